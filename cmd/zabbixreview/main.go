// zabbixreview exports Zabbix configuration objects (hosts, templates,
// value maps, screens, actions, mediatypes) to one file per object, for
// keeping monitoring configuration under review in version control.
//
// Usage:
//
//	# Export everything in native formats (XML/JSON)
//	zabbixreview --zabbix-url https://zabbix.example.com \
//	    --zabbix-username review --zabbix-password secret
//
//	# Convert all output to YAML
//	zabbixreview --zabbix-url ... --zabbix-username ... \
//	    --zabbix-password ... --save-yaml
package main

func main() {
	Execute()
}
