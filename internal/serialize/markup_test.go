package serialize

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8"?>
<zabbix_export><version>4.0</version><date>2019-04-01T12:30:45Z</date><hosts><host><name>web &quot;prod&quot;</name><status>0</status><description/><groups><group><name>Linux servers</name></group><group><name>Web</name></group></groups></host></hosts></zabbix_export>`

func TestDumpMarkup_XML(t *testing.T) {
	dir := t.TempDir()
	o := Options{Dir: dir}
	if err := o.DumpMarkup("hosts", sampleExport, `web "prod"`); err != nil {
		t.Fatalf("DumpMarkup returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "hosts", "web  prod .xml"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	txt := string(data)

	if !strings.HasPrefix(txt, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("output lacks UTF-8 XML declaration")
	}
	if strings.Contains(txt, "<date>") {
		t.Error("volatile <date> element survived")
	}
	if !strings.Contains(txt, "  <version>4.0</version>") {
		t.Error("output is not re-indented with 2 spaces")
	}
	if strings.Contains(txt, "&quot;") {
		t.Error("escaped double-quote entities were not replaced")
	}
	if !strings.Contains(txt, `web "prod"`) {
		t.Error("literal quotes missing from output")
	}
}

func TestDumpMarkup_YAML(t *testing.T) {
	dir := t.TempDir()
	o := Options{Dir: dir, SaveYAML: true}
	if err := o.DumpMarkup("hosts", sampleExport, "web"); err != nil {
		t.Fatalf("DumpMarkup returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "hosts", "web.yaml"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	export, ok := parsed["zabbix_export"].(map[string]interface{})
	if !ok {
		t.Fatal("missing zabbix_export root mapping")
	}
	if _, exists := export["date"]; exists {
		t.Error("volatile date survived conversion")
	}
	if export["version"] != "4.0" {
		t.Errorf("version = %v, want 4.0", export["version"])
	}

	host := export["hosts"].(map[string]interface{})["host"].(map[string]interface{})
	if host["name"] != `web "prod"` {
		t.Errorf("host name = %v, want web \"prod\"", host["name"])
	}
	if host["status"] != "0" {
		t.Errorf("host status = %v, want 0", host["status"])
	}
	// Empty <description/> parses to null and is stripped.
	if _, exists := host["description"]; exists {
		t.Error("empty element survived null stripping")
	}
	// Repeated <group> children become a sequence.
	groups := host["groups"].(map[string]interface{})["group"].([]interface{})
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].(map[string]interface{})["name"] != "Linux servers" {
		t.Errorf("first group = %v, want Linux servers", groups[0])
	}
}

func TestDumpMarkup_Malformed(t *testing.T) {
	o := Options{Dir: t.TempDir()}
	if err := o.DumpMarkup("hosts", "<zabbix_export><unclosed>", "broken"); err == nil {
		t.Fatal("DumpMarkup should propagate a parse error for malformed markup")
	}
}

func TestDumpMarkup_DateAnywhere(t *testing.T) {
	dir := t.TempDir()
	o := Options{Dir: dir}
	blob := `<zabbix_export><nested><date>anything at all</date></nested></zabbix_export>`
	if err := o.DumpMarkup("hosts", blob, "n"); err != nil {
		t.Fatalf("DumpMarkup returned error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "hosts", "n.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "<date") {
		t.Error("nested <date> element survived")
	}
}
