package datastructure

import (
	"fmt"
	"os"

	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/util"
	"github.com/tidwall/gjson"
)

// tree source JSON:
//
//	{
//	  "nodes": [
//	    {"id": 1203, "name": "Heavy Blows", "kind": "notable",
//	     "connections": [1204, 1388],
//	     "stats": {"increased_physical_damage": 25}}
//	  ]
//	}
//
// connections may be listed on either endpoint, NewTreeGraph mirrors them.

func ReadTreeGraph(path string) (*TreeGraph, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree file: %w", err)
	}
	return ParseTreeGraph(string(buf))
}

func ParseTreeGraph(treeJSON string) (*TreeGraph, error) {
	if !gjson.Valid(treeJSON) {
		return nil, util.WrapErrorf(nil, util.ErrInvalidConfiguration, "tree source is not valid json")
	}

	var (
		nodes    []*Node
		parseErr error
	)
	gjson.Get(treeJSON, "nodes").ForEach(func(_, v gjson.Result) bool {
		id := Index(v.Get("id").Uint())
		kind, err := parseNodeKind(v.Get("kind").String())
		if err != nil {
			parseErr = util.WrapErrorf(err, util.ErrInvalidConfiguration, "node %d: bad kind", id)
			return false
		}

		var neighbors []Index
		v.Get("connections").ForEach(func(_, c gjson.Result) bool {
			neighbors = append(neighbors, Index(c.Uint()))
			return true
		})

		node := NewNode(id, kind, v.Get("name").String(), neighbors)
		if stats := v.Get("stats"); stats.Exists() {
			m := make(map[string]float64)
			stats.ForEach(func(k, sv gjson.Result) bool {
				m[k.String()] = sv.Float()
				return true
			})
			node.SetStats(m)
		}
		nodes = append(nodes, node)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(nodes) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrInvalidConfiguration, "tree source contains no nodes")
	}
	return NewTreeGraph(nodes), nil
}

func parseNodeKind(s string) (pkg.NodeKind, error) {
	switch s {
	case "travel":
		return pkg.TRAVEL, nil
	case "small":
		return pkg.SMALL, nil
	case "notable":
		return pkg.NOTABLE, nil
	case "keystone":
		return pkg.KEYSTONE, nil
	case "class_start":
		return pkg.CLASS_START, nil
	}
	return 0, fmt.Errorf("unknown node kind %q", s)
}

// build JSON: {"level": 92, "class_start": 1200, "allocated": [1201, 1203]}
func ReadBuild(path string) (*Configuration, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read build file: %w", err)
	}
	return ParseBuild(string(buf))
}

func ParseBuild(buildJSON string) (*Configuration, error) {
	if !gjson.Valid(buildJSON) {
		return nil, util.WrapErrorf(nil, util.ErrInvalidConfiguration, "build is not valid json")
	}

	level := int(gjson.Get(buildJSON, "level").Int())
	classStart := Index(gjson.Get(buildJSON, "class_start").Uint())

	var allocated []Index
	gjson.Get(buildJSON, "allocated").ForEach(func(_, v gjson.Result) bool {
		allocated = append(allocated, Index(v.Uint()))
		return true
	})

	return NewConfiguration(level, classStart, allocated)
}
