// Package serialize writes fetched configuration objects to per-category
// folders, one file per object, normalized for review diffs.
package serialize

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/evgkrsk/zabbix-review-export/internal/models"
)

// Options configures the output destination and format for one run.
type Options struct {
	Dir      string // output root; category folders are created beneath it
	SaveYAML bool   // render YAML instead of the native format
}

var unsafeChars = regexp.MustCompile(`[\\/:"*?<>|]+`)

// SanitizeName replaces filesystem-unsafe characters (and runs thereof)
// in a display name with a single space.
func SanitizeName(name string) string {
	return unsafeChars.ReplaceAllString(name, " ")
}

func (o Options) extension(native string) string {
	if o.SaveYAML {
		return "yaml"
	}
	return native
}

func (o Options) ensureFolder(folder string) (string, error) {
	dir := filepath.Join(o.Dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	return dir, nil
}

// DumpStructured writes each item as an individual JSON document (4-space
// indent) named after its sanitized nameKey value. Mapping keys come out
// sorted in both formats; with SaveYAML set, null-valued entries are
// stripped and the item is rendered as YAML instead.
//
// Two items sanitizing to the same name silently overwrite.
func (o Options) DumpStructured(folder string, items []models.Resource, nameKey string) error {
	dir, err := o.ensureFolder(folder)
	if err != nil {
		return err
	}
	for _, item := range items {
		name := SanitizeName(item.StringField(nameKey))
		path := filepath.Join(dir, name+"."+o.extension("json"))

		var out []byte
		if o.SaveYAML {
			out, err = marshalYAML(map[string]interface{}(item))
		} else {
			// encoding/json already emits map keys in sorted order,
			// which keeps repeated exports byte-identical.
			out, err = json.MarshalIndent(item, "", "    ")
		}
		if err != nil {
			return fmt.Errorf("rendering %q: %w", name, err)
		}

		logrus.Debugf("Write to file %q", path)
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// DumpMarkup writes a server-rendered export document under the sanitized
// item name: pretty-printed XML natively, or — with SaveYAML — converted to
// generic structured data with nulls stripped and rendered as YAML. The
// volatile <date> element is removed either way.
func (o Options) DumpMarkup(folder, blob, name string) error {
	dir, err := o.ensureFolder(folder)
	if err != nil {
		return err
	}
	name = SanitizeName(name)

	doc, err := parseExport(blob)
	if err != nil {
		return fmt.Errorf("%s %q: %w", folder, name, err)
	}

	var out []byte
	if o.SaveYAML {
		out, err = marshalYAML(treeFromDoc(doc))
	} else {
		var txt string
		txt, err = renderXML(doc)
		out = []byte(txt)
	}
	if err != nil {
		return fmt.Errorf("rendering %q: %w", name, err)
	}

	path := filepath.Join(dir, name+"."+o.extension("xml"))
	logrus.Debugf("Write to file %q", path)
	return os.WriteFile(path, out, 0o644)
}
