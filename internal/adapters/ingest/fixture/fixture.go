// Package fixture reads announcement text blocks from YAML files, for replaying a page
// through the engine without the network
package fixture

import (
	"bytes"
	"io"
	"os"
	"time"

	"bridgewatch/internal/core/schedule"
	perr "bridgewatch/internal/platform/errors"
	ptime "bridgewatch/internal/platform/time"

	"gopkg.in/yaml.v3"
)

// Fixture is a recorded page. Now and Timezone are optional hints for replay
type Fixture struct {
	Name     string
	Now      *time.Time
	Location *time.Location
	Blocks   []schedule.RawBlock
}

type fileDoc struct {
	Name     string      `yaml:"name"`
	Now      string      `yaml:"now"`
	Timezone string      `yaml:"timezone"`
	Blocks   []blockNode `yaml:"blocks"`
}

type blockNode struct {
	Text  string `yaml:"text"`
	Kind  string `yaml:"kind"`
	Order *int   `yaml:"order_index"`
}

// Load reads a fixture file from disk
func Load(path string) (Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read fixture %s", path)
	}
	return Decode(bytes.NewReader(b))
}

// Decode reads either a mapping with a blocks key or a bare list of blocks.
// Blocks without order_index get their position in the file
func Decode(r io.Reader) (Fixture, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Fixture{}, perr.Wrap(err, perr.ErrorCodeParse, "read fixture")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return Fixture{}, perr.Wrap(err, perr.ErrorCodeParse, "decode fixture yaml")
	}

	var doc fileDoc
	if len(root.Content) > 0 && root.Content[0].Kind == yaml.SequenceNode {
		err = root.Content[0].Decode(&doc.Blocks)
	} else if len(root.Content) > 0 {
		err = root.Content[0].Decode(&doc)
	}
	if err != nil {
		return Fixture{}, perr.Wrap(err, perr.ErrorCodeParse, "decode fixture yaml")
	}

	fx := Fixture{Name: doc.Name, Blocks: make([]schedule.RawBlock, 0, len(doc.Blocks))}
	if doc.Timezone != "" {
		loc, err := time.LoadLocation(doc.Timezone)
		if err != nil {
			return Fixture{}, perr.InvalidArgf("fixture timezone %q: %v", doc.Timezone, err)
		}
		fx.Location = loc
	}
	if doc.Now != "" {
		now, err := ptime.ParseIn(doc.Now, fx.Location)
		if err != nil {
			return Fixture{}, perr.WithField(err, "now")
		}
		fx.Now = &now
	}

	for i, bn := range doc.Blocks {
		var kind schedule.StructuralKind
		if err := kind.UnmarshalText([]byte(bn.Kind)); err != nil {
			return Fixture{}, perr.Wrapf(err, perr.ErrorCodeParse, "block %d", i)
		}
		order := i
		if bn.Order != nil {
			order = *bn.Order
		}
		fx.Blocks = append(fx.Blocks, schedule.RawBlock{Text: bn.Text, OrderIndex: order, Kind: kind})
	}
	return fx, nil
}

// Encode writes blocks as a fixture document, e.g. to record a live page
func Encode(w io.Writer, name string, blocks []schedule.RawBlock) error {
	doc := fileDoc{Name: name, Blocks: make([]blockNode, len(blocks))}
	for i, b := range blocks {
		order := b.OrderIndex
		doc.Blocks[i] = blockNode{Text: b.Text, Kind: b.Kind.String(), Order: &order}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "encode fixture")
	}
	return enc.Close()
}
