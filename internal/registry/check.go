package registry

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/specialistvlad/queueplan/internal/ctxlog"
	"github.com/specialistvlad/queueplan/internal/params"
	"github.com/specialistvlad/queueplan/internal/phase"
	"github.com/specialistvlad/queueplan/internal/topology"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// CheckError aggregates catalog findings into a single error.
type CheckError struct {
	Findings []string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("plugin catalog check failed:\n- %s", strings.Join(e.Findings, "\n- "))
}

// Check lints every module of the topology against the catalog and returns
// the findings in module declaration order.
func (r *Registry) Check(ctx context.Context, topo *topology.Topology, table *params.Table) []string {
	logger := ctxlog.FromContext(ctx)
	var findings []string

	for _, m := range topo.Modules() {
		p, ok := r.plugins[m.Plugin]
		if !ok {
			findings = append(findings, fmt.Sprintf("module '%s': unknown plugin kind '%s' (known: %s)", m.Name, m.Plugin, strings.Join(r.Kinds(), ", ")))
			continue
		}
		findings = append(findings, checkBindings(m, p)...)
		findings = append(findings, checkCommands(m, p, table)...)
		findings = append(findings, checkConf(m, p, table)...)
	}

	findings = append(findings, checkQueues(topo)...)

	logger.Debug("Plugin catalog check finished.", "modules", len(topo.Modules()), "findings", len(findings))
	return findings
}

// checkQueues reports single-producer/single-consumer queues with more than
// one module on either side, and queues that nothing reads or writes.
func checkQueues(topo *topology.Topology) []string {
	producers := make(map[string]int)
	consumers := make(map[string]int)
	for _, m := range topo.Modules() {
		for _, b := range m.Bindings {
			if b.Direction == topology.Output {
				producers[b.Queue]++
			} else {
				consumers[b.Queue]++
			}
		}
	}

	var findings []string
	for _, q := range topo.Queues() {
		p, c := producers[q.Name], consumers[q.Name]
		if q.Kind == topology.FollySPSCQueue && (p > 1 || c > 1) {
			findings = append(findings, fmt.Sprintf("queue '%s': %s allows one producer and one consumer, has %d and %d", q.Name, q.Kind, p, c))
		}
		if p == 0 && c == 0 {
			findings = append(findings, fmt.Sprintf("queue '%s': not bound by any module", q.Name))
		}
	}
	return findings
}

// Validate runs Check and folds any findings into a *CheckError.
func (r *Registry) Validate(ctx context.Context, topo *topology.Topology, table *params.Table) error {
	if findings := r.Check(ctx, topo, table); len(findings) > 0 {
		return &CheckError{Findings: findings}
	}
	return nil
}

func checkBindings(m topology.Module, p *Plugin) []string {
	var findings []string
	bound := make(map[string]struct{}, len(m.Bindings))
	for _, b := range m.Bindings {
		bound[b.Name] = struct{}{}
		want, ok := p.Bindings[b.Name]
		if !ok {
			findings = append(findings, fmt.Sprintf("module '%s': plugin '%s' has no binding '%s'", m.Name, p.Kind, b.Name))
			continue
		}
		if want != b.Direction {
			findings = append(findings, fmt.Sprintf("module '%s' binding '%s': plugin '%s' uses it as %s, declared as %s", m.Name, b.Name, p.Kind, want, b.Direction))
		}
	}

	var missing []string
	for name := range p.Bindings {
		if _, ok := bound[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	for _, name := range missing {
		findings = append(findings, fmt.Sprintf("module '%s': binding '%s' of plugin '%s' is not connected", m.Name, name, p.Kind))
	}
	return findings
}

func checkCommands(m topology.Module, p *Plugin, table *params.Table) []string {
	var findings []string
	for _, ph := range table.Phases(m.Name) {
		if !p.Accepts(ph) {
			findings = append(findings, fmt.Sprintf("module '%s': plugin '%s' does not accept '%s' commands", m.Name, p.Kind, ph))
		}
	}
	return findings
}

// checkConf matches the conf payload against the plugin's Conf struct.
// Attributes whose Go type is cty.Value are only checked for presence.
func checkConf(m topology.Module, p *Plugin, table *params.Table) []string {
	if p.Conf == nil {
		return nil
	}
	attrs, err := confAttributes(p.Conf)
	if err != nil {
		return []string{fmt.Sprintf("plugin '%s': %v", p.Kind, err)}
	}

	data, ok := table.Lookup(m.Name, phase.Conf)
	if !ok || data.IsNull() {
		return []string{fmt.Sprintf("module '%s': plugin '%s' expects conf parameters", m.Name, p.Kind)}
	}
	ty := data.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return []string{fmt.Sprintf("module '%s': conf parameters must be an object, got %s", m.Name, ty.FriendlyName())}
	}

	var findings []string
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v, present := attribute(data, name)
		if !present {
			findings = append(findings, fmt.Sprintf("module '%s': conf is missing '%s'", m.Name, name))
			continue
		}
		field := attrs[name]
		if field.ty.Equals(cty.DynamicPseudoType) {
			continue
		}
		conv, err := convert.Convert(v, field.ty)
		if err == nil {
			err = gocty.FromCtyValue(conv, reflect.New(field.goType).Interface())
		}
		if err != nil {
			findings = append(findings, fmt.Sprintf("module '%s': conf '%s': %v", m.Name, name, err))
		}
	}
	return findings
}

func attribute(v cty.Value, name string) (cty.Value, bool) {
	if v.Type().IsObjectType() {
		if !v.Type().HasAttribute(name) {
			return cty.NilVal, false
		}
		return v.GetAttr(name), true
	}
	key := cty.StringVal(name)
	if v.HasIndex(key).True() {
		return v.Index(key), true
	}
	return cty.NilVal, false
}

var valueType = reflect.TypeOf(cty.Value{})

type confField struct {
	ty     cty.Type
	goType reflect.Type
}

// confAttributes derives the expected conf attributes from the `cty` tags of
// a struct. Fields of type cty.Value accept any value.
func confAttributes(t reflect.Type) (map[string]confField, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("conf type must be a struct, got %s", t)
	}
	attrs := make(map[string]confField)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := strings.Split(field.Tag.Get("cty"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		if field.Type == valueType {
			attrs[name] = confField{ty: cty.DynamicPseudoType, goType: field.Type}
			continue
		}
		ty, err := gocty.ImpliedType(reflect.Zero(field.Type).Interface())
		if err != nil {
			return nil, fmt.Errorf("conf field %s: %w", field.Name, err)
		}
		attrs[name] = confField{ty: ty, goType: field.Type}
	}
	return attrs, nil
}
