package main

import (
	"fmt"
	"github.com/francoispqt/gojay"
	"strings"
)

type renderer interface {
	text() string
	marshalJSON() ([]byte, error)
}

type stringSlice []string

func (s stringSlice) MarshalJSONArray(enc *gojay.Encoder) {
	for i := 0; i < len(s); i++ {
		enc.String(s[i])
	}
}

func (s stringSlice) IsNil() bool {
	return s == nil
}

type resolution struct {
	Role      string
	Mode      string
	Libraries []string
}

func (r *resolution) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("role", r.Role)
	enc.StringKey("mode", r.Mode)
	enc.ArrayKey("libraries", stringSlice(r.Libraries))
}

func (r *resolution) IsNil() bool {
	return r == nil
}

func (r *resolution) marshalJSON() ([]byte, error) {
	return gojay.MarshalJSONObject(r)
}

func (r *resolution) text() string {
	builder := strings.Builder{}
	for _, lib := range r.Libraries {
		builder.WriteString(lib)
		builder.WriteByte('\n')
	}
	return builder.String()
}

type step struct {
	Reference string
	Source    string
	Name      string
	Kind      string
	Action    string
}

func (s *step) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("reference", s.Reference)
	enc.StringKey("source", s.Source)
	enc.StringKey("name", s.Name)
	enc.StringKey("kind", s.Kind)
	enc.StringKey("action", s.Action)
}

func (s *step) IsNil() bool {
	return s == nil
}

type steps []*step

func (s steps) MarshalJSONArray(enc *gojay.Encoder) {
	for i := 0; i < len(s); i++ {
		enc.Object(s[i])
	}
}

func (s steps) IsNil() bool {
	return s == nil
}

type plan struct {
	Role  string
	Mode  string
	Steps steps
}

func (p *plan) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("role", p.Role)
	enc.StringKey("mode", p.Mode)
	enc.ArrayKey("steps", p.Steps)
}

func (p *plan) IsNil() bool {
	return p == nil
}

func (p *plan) marshalJSON() ([]byte, error) {
	return gojay.MarshalJSONObject(p)
}

func (p *plan) text() string {
	builder := strings.Builder{}
	for _, s := range p.Steps {
		builder.WriteString(fmt.Sprintf("%v\t%v\t%v\t%v\n", s.Reference, s.Name, s.Kind, s.Action))
	}
	return builder.String()
}
