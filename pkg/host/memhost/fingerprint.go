package memhost

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"reflect"
	"slices"

	"github.com/matzehuels/shadergraph/pkg/host"
)

// Fingerprint implements host.Fingerprinter. It hashes the type namespace and
// every node type definition, so two hosts registering the same names with
// different sockets, properties, defaults or extension state differ.
func (h *Host) Fingerprint() string {
	sum := sha256.New()
	h.types.Scan(func(name string, t host.TypeInfo) bool {
		fmt.Fprintf(sum, "type %s node=%t registered=%t\n", t.Name, t.IsNode, t.Registered)
		if def, ok := h.defs.Get(name); ok {
			writeDef(sum, def)
		}
		return true
	})
	return hex.EncodeToString(sum.Sum(nil))
}

func writeDef(w io.Writer, d *NodeDef) {
	fmt.Fprintf(w, "def %q %q %q %v %v\n", d.Name, d.Type, d.Label, d.Width, d.Height)
	for _, s := range d.Inputs {
		writeSocket(w, "in", s)
	}
	for _, s := range d.Outputs {
		writeSocket(w, "out", s)
	}
	for _, p := range d.Properties {
		fmt.Fprintf(w, "prop %+v\n", p)
	}
	keys := make([]string, 0, len(d.Defaults))
	for k := range d.Defaults {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "default %q %s\n", k, describe(d.Defaults[k]))
	}
	fmt.Fprintf(w, "ramp %s\ncurves %s\n", describe(d.ColorRamp), describe(d.Curves))
	if d.FailNew != nil {
		fmt.Fprintf(w, "fail %q\n", d.FailNew.Error())
	}
}

func writeSocket(w io.Writer, dir string, s SocketDef) {
	fmt.Fprintf(w, "%s %q %q %q %s disabled=%t hidden=%t hidevalue=%t\n",
		dir, s.Name, s.Identifier, s.Type, describe(s.Default), s.Disabled, s.Hidden, s.HideValue)
}

// describe formats v by value. Pointers are followed once so the output does
// not depend on addresses.
func describe(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "<nil>"
		}
		return fmt.Sprintf("&%#v", rv.Elem().Interface())
	}
	return fmt.Sprintf("%#v", v)
}

var _ host.Fingerprinter = (*Host)(nil)
