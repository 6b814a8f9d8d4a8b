package models

import "strconv"

// Resource represents a generic Zabbix API object (host, template, action, etc.).
type Resource map[string]interface{}

// Category describes one class of exportable configuration object.
type Category struct {
	Name      string                 // output folder: "hosts", "actions", ...
	Method    string                 // listing method: "host.get", "action.get", ...
	IDField   string                 // "hostid", "templateid", ... (markup categories only)
	NameField string                 // display-name field used for filenames
	Export    bool                   // true if configuration.export supports this class
	Params    map[string]interface{} // extra listing params (selectOperations etc.)
}

// StringField safely extracts a string field, returning "" if absent or not a string.
func (r Resource) StringField(field string) string {
	if v, ok := r[field].(string); ok {
		return v
	}
	return ""
}

// ID returns the resource's identifier under the given ID field key.
// Zabbix returns IDs as strings ("10084"); tolerate numbers anyway.
func (r Resource) ID(field string) string {
	switch v := r[field].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	}
	return ""
}
