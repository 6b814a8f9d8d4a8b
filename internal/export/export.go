// Package export drives a full configuration export: every category is
// fetched and written sequentially, and any failure aborts the run.
package export

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/evgkrsk/zabbix-review-export/internal/models"
	"github.com/evgkrsk/zabbix-review-export/internal/serialize"
	"github.com/evgkrsk/zabbix-review-export/internal/zabbix"
)

// Category registry. The first four support the server-side
// configuration.export call and come back as markup documents; actions and
// mediatypes have no export support and are fetched as structured records
// with their related data expanded inline.
var categories = []models.Category{
	{Name: "hosts", Method: "host.get", IDField: "hostid", NameField: "name", Export: true},
	{Name: "templates", Method: "template.get", IDField: "templateid", NameField: "name", Export: true},
	{Name: "valueMaps", Method: "valuemap.get", IDField: "valuemapid", NameField: "name", Export: true},
	{Name: "screens", Method: "screen.get", IDField: "screenid", NameField: "name", Export: true},
	{Name: "actions", Method: "action.get", NameField: "name",
		Params: map[string]interface{}{"selectOperations": "extend", "selectFilter": "extend"}},
	{Name: "mediatypes", Method: "mediatype.get", NameField: "description",
		Params: map[string]interface{}{"selectUsers": "extend"}},
}

// Run exports every category through the client into opts.Dir.
func Run(client *zabbix.Client, opts serialize.Options) error {
	if opts.SaveYAML {
		logrus.Info("Convert all formats to yaml")
	}

	logrus.Info("Start export XML part...")
	for _, cat := range categories {
		if !cat.Export {
			continue
		}
		if err := exportMarkup(client, cat, opts); err != nil {
			return err
		}
	}

	logrus.Info("Start export JSON part...")
	for _, cat := range categories {
		if cat.Export {
			continue
		}
		if err := exportStructured(client, cat, opts); err != nil {
			return err
		}
	}
	return nil
}

// exportMarkup fetches a category's listing and requests a per-item export
// document scoped to that single item's ID.
func exportMarkup(client *zabbix.Client, cat models.Category, opts serialize.Options) error {
	logrus.Infof("Export %s", cat.Name)
	items, err := client.Get(cat.Method, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", cat.Name, err)
	}
	for _, item := range items {
		name := item.StringField(cat.NameField)
		logrus.Infof("Processing %s...", name)
		blob, err := client.ConfigurationExport("xml", map[string][]string{
			cat.Name: {item.ID(cat.IDField)},
		})
		if err != nil {
			return fmt.Errorf("%s %q: %w", cat.Name, name, err)
		}
		if err := opts.DumpMarkup(cat.Name, blob, name); err != nil {
			return err
		}
	}
	return nil
}

// exportStructured fetches a category's full listing with its expansions
// and hands the whole thing to the serializer in one call.
func exportStructured(client *zabbix.Client, cat models.Category, opts serialize.Options) error {
	logrus.Infof("Processing %s...", cat.Name)
	items, err := client.Get(cat.Method, cat.Params)
	if err != nil {
		return fmt.Errorf("%s: %w", cat.Name, err)
	}
	return opts.DumpStructured(cat.Name, items, cat.NameField)
}
