package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kerbaras/holocron/pkg/data"
	"gopkg.in/yaml.v3"
)

type fieldView struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

type itemView struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

type groupView struct {
	Title string     `json:"title" yaml:"title"`
	Kind  data.Kind  `json:"kind" yaml:"kind"`
	Items []itemView `json:"items" yaml:"items"`
}

type recordView struct {
	Name    string      `json:"name" yaml:"name"`
	URL     string      `json:"url" yaml:"url"`
	Fields  []fieldView `json:"fields" yaml:"fields"`
	Related []groupView `json:"related" yaml:"related"`
}

func viewOf(record data.Record) recordView {
	primary := record.Primary()
	out := recordView{
		Name:    primary.DisplayName(),
		URL:     primary.ResourceURL(),
		Fields:  []fieldView{},
		Related: []groupView{},
	}
	for _, f := range primary.Fields() {
		out.Fields = append(out.Fields, fieldView{Label: f.Label, Value: f.Value})
	}
	for _, g := range record.Related() {
		gv := groupView{Title: g.Title, Kind: g.Kind, Items: []itemView{}}
		for _, item := range g.Items {
			gv.Items = append(gv.Items, itemView{Name: item.DisplayName(), URL: item.ResourceURL()})
		}
		out.Related = append(out.Related, gv)
	}
	return out
}

// writeRecord prints record as text, json or yaml.
func writeRecord(w io.Writer, record data.Record, format string) error {
	switch format {
	case "", "text":
		_, err := fmt.Fprintln(w, renderRecord(record))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(viewOf(record))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(viewOf(record)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
}
