// Package config loads scenario files.
package config

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"go.trai.ch/pathcache/internal/adapters/beans"
	"go.trai.ch/pathcache/internal/core/domain"
	"go.trai.ch/pathcache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ScenarioLoader for YAML files.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ScenarioLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads, parses and validates the scenario at path.
func (l *Loader) Load(path string) (*domain.Scenario, error) {
	// #nosec G304 -- the scenario path is chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrScenarioReadFailed, err.Error()), "file", path)
	}
	sc, err := l.Parse(data)
	if err != nil {
		return nil, zerr.With(err, "file", path)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

// Parse builds a scenario from YAML.
func (l *Loader) Parse(data []byte) (*domain.Scenario, error) {
	var file Scenariofile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(domain.ErrScenarioParseFailed, err.Error())
	}
	if file.Version != SchemaVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedVersion, "cannot load scenario"), "version", file.Version)
	}

	b := &builder{file: &file, sc: &domain.Scenario{Name: file.Name}, used: make(map[string]bool)}
	if err := b.build(); err != nil {
		return nil, err
	}

	for _, id := range slices.Sorted(maps.Keys(file.Objects)) {
		if !b.used[id] {
			l.Logger.Warn("object is never used", "object", id)
		}
	}
	l.Logger.Debug("scenario parsed",
		"classes", len(b.sc.Classes), "objects", len(b.sc.Objects), "steps", len(b.sc.Steps))
	return b.sc, nil
}

type builder struct {
	file *Scenariofile
	sc   *domain.Scenario
	// used records objects that are roots or referenced somewhere.
	used map[string]bool
}

func (b *builder) build() error {
	steps := []func() error{
		b.buildClasses,
		b.buildObjects,
		b.buildRoots,
		b.buildPaths,
		b.buildSteps,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) buildClasses() error {
	b.sc.Classes = make(map[string]*domain.Class, len(b.file.Classes))
	for name := range b.file.Classes {
		b.sc.Classes[name] = domain.NewClass(name)
	}

	for _, name := range slices.Sorted(maps.Keys(b.file.Classes)) {
		dto := b.file.Classes[name]
		if dto == nil {
			continue
		}
		class := b.sc.Classes[name]
		for _, attrName := range slices.Sorted(maps.Keys(dto.Attributes)) {
			attr, err := b.attribute(attrName, dto.Attributes[attrName])
			if err != nil {
				return zerr.With(err, "class", name)
			}
			class.Define(attr)
		}
	}

	if b.file.RootClass != "" {
		c, ok := b.sc.Classes[b.file.RootClass]
		if !ok {
			return zerr.With(zerr.Wrap(domain.ErrUnknownClass, "root class is not declared"), "class", b.file.RootClass)
		}
		b.sc.RootClass = c
	}
	return nil
}

func (b *builder) attribute(name, typ string) (domain.Attribute, error) {
	attr := domain.Attribute{Name: name}
	switch typ {
	case "int":
		attr.Kind = domain.KindInt
	case "float":
		attr.Kind = domain.KindFloat
	case "string":
		attr.Kind = domain.KindString
	case "bool":
		attr.Kind = domain.KindBool
	case "any", "":
		attr.Kind = domain.KindAny
	default:
		c, ok := b.sc.Classes[typ]
		if !ok {
			err := zerr.With(zerr.Wrap(domain.ErrInvalidAttributeType, "cannot declare attribute"), "attribute", name)
			return attr, zerr.With(err, "type", typ)
		}
		attr.Kind = domain.KindObject
		attr.Class = c
	}
	return attr, nil
}

func (b *builder) buildObjects() error {
	for _, id := range slices.Sorted(maps.Keys(b.file.Objects)) {
		dto := b.file.Objects[id]
		if dto == nil {
			return zerr.With(zerr.Wrap(domain.ErrUnknownClass, "object has no class"), "object", id)
		}
		class, ok := b.sc.Classes[dto.Class]
		if !ok {
			err := zerr.With(zerr.Wrap(domain.ErrUnknownClass, "object class is not declared"), "object", id)
			return zerr.With(err, "class", dto.Class)
		}

		spec := domain.ObjectSpec{
			ID:     id,
			Class:  dto.Class,
			Values: make(map[string]any),
			Refs:   make(map[string]string),
		}
		for _, attrName := range slices.Sorted(maps.Keys(dto.Values)) {
			value, ref, err := b.value(class, attrName, dto.Values[attrName])
			if err != nil {
				return zerr.With(err, "object", id)
			}
			if ref != "" {
				spec.Refs[attrName] = ref
				continue
			}
			spec.Values[attrName] = value
		}
		b.sc.Objects = append(b.sc.Objects, spec)
	}
	return nil
}

// value converts a raw YAML value for attrName of class. A reference is
// returned as the referenced object ID.
func (b *builder) value(class *domain.Class, attrName string, raw any) (any, string, error) {
	attr, ok := class.Attribute(attrName)
	if !ok {
		err := zerr.Wrap(domain.ErrUnknownAttribute, "class has no such attribute")
		err = zerr.With(err, "class", class.Name)
		return nil, "", zerr.With(err, "attribute", attrName)
	}

	if s, ok := raw.(string); ok && strings.HasPrefix(s, RefPrefix) &&
		(attr.Kind == domain.KindObject || attr.Kind == domain.KindAny) {
		ref := strings.TrimPrefix(s, RefPrefix)
		if err := b.checkRef(attr, ref); err != nil {
			return nil, "", err
		}
		return nil, ref, nil
	}

	if attr.Kind == domain.KindFloat {
		if n, ok := raw.(int); ok {
			raw = float64(n)
		}
	}
	if attr.Kind == domain.KindObject && raw != nil {
		err := zerr.Wrap(domain.ErrTypeMismatch, "object attributes take a reference")
		err = zerr.With(err, "attribute", attrName)
		return nil, "", zerr.With(err, "value", fmt.Sprintf("%v", raw))
	}
	if err := beans.CheckValue(attr, raw); err != nil {
		return nil, "", err
	}
	return raw, "", nil
}

func (b *builder) checkRef(attr *domain.Attribute, ref string) error {
	target, ok := b.file.Objects[ref]
	if !ok || target == nil {
		err := zerr.With(zerr.Wrap(domain.ErrUnknownObject, "reference does not resolve"), "object", ref)
		return zerr.With(err, "attribute", attr.Name)
	}
	if attr.Class != nil && target.Class != attr.Class.Name {
		err := zerr.Wrap(domain.ErrTypeMismatch, "referenced object has the wrong class")
		err = zerr.With(err, "attribute", attr.Name)
		err = zerr.With(err, "want", attr.Class.Name)
		return zerr.With(err, "got", target.Class)
	}
	b.used[ref] = true
	return nil
}

func (b *builder) object(id string) (*domain.Class, error) {
	dto, ok := b.file.Objects[id]
	if !ok || dto == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownObject, "object is not declared"), "object", id)
	}
	b.used[id] = true
	return b.sc.Classes[dto.Class], nil
}

func (b *builder) buildRoots() error {
	for _, id := range b.file.Roots {
		if _, err := b.object(id); err != nil {
			return err
		}
		b.sc.Roots = append(b.sc.Roots, id)
	}
	return nil
}

func (b *builder) path(raw string) (domain.Path, error) {
	p, err := domain.ParsePath(raw)
	if err != nil {
		return nil, err
	}
	if b.sc.RootClass != nil {
		if err := b.sc.RootClass.Resolve(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (b *builder) buildPaths() error {
	for _, raw := range b.file.Paths {
		p, err := b.path(raw)
		if err != nil {
			return err
		}
		b.sc.Paths = append(b.sc.Paths, p)
	}
	return nil
}

func (b *builder) buildSteps() error {
	for i, dto := range b.file.Steps {
		if dto == nil {
			return zerr.With(zerr.Wrap(domain.ErrInvalidStep, "step is empty"), "step", i+1)
		}
		step, err := b.step(dto)
		if err != nil {
			return zerr.With(err, "step", i+1)
		}
		b.sc.Steps = append(b.sc.Steps, step)
	}
	return nil
}

func (b *builder) step(dto *StepDTO) (domain.Step, error) {
	var ops []string
	for name, set := range map[string]bool{
		"set":         dto.Set != "",
		"add_root":    dto.AddRoot != "",
		"remove_root": dto.RemoveRoot != "",
		"add_path":    dto.AddPath != "",
		"remove_path": dto.RemovePath != "",
		"get":         dto.Get != "",
		"wait_ready":  dto.WaitReady,
		"clear":       dto.Clear,
	} {
		if set {
			ops = append(ops, name)
		}
	}
	if len(ops) != 1 {
		slices.Sort(ops)
		err := zerr.Wrap(domain.ErrInvalidStep, "step must name exactly one operation")
		return domain.Step{}, zerr.With(err, "operations", strings.Join(ops, ","))
	}

	switch {
	case dto.Set != "":
		return b.setStep(dto)
	case dto.AddRoot != "":
		_, err := b.object(dto.AddRoot)
		return domain.Step{Kind: domain.StepAddRoot, Object: dto.AddRoot}, err
	case dto.RemoveRoot != "":
		_, err := b.object(dto.RemoveRoot)
		return domain.Step{Kind: domain.StepRemoveRoot, Object: dto.RemoveRoot}, err
	case dto.AddPath != "":
		p, err := b.path(dto.AddPath)
		return domain.Step{Kind: domain.StepAddPath, Path: p}, err
	case dto.RemovePath != "":
		p, err := b.path(dto.RemovePath)
		return domain.Step{Kind: domain.StepRemovePath, Path: p}, err
	case dto.Get != "":
		id, rest, _ := strings.Cut(dto.Get, ".")
		if _, err := b.object(id); err != nil {
			return domain.Step{}, err
		}
		p, err := domain.ParsePath(rest)
		return domain.Step{Kind: domain.StepGet, Object: id, Path: p}, err
	case dto.WaitReady:
		return domain.Step{Kind: domain.StepWaitReady}, nil
	default:
		return domain.Step{Kind: domain.StepClear}, nil
	}
}

func (b *builder) setStep(dto *StepDTO) (domain.Step, error) {
	id, attrName, ok := strings.Cut(dto.Set, ".")
	if !ok || attrName == "" || strings.Contains(attrName, ".") {
		return domain.Step{}, zerr.With(zerr.Wrap(domain.ErrInvalidStep, "set takes object.attribute"), "set", dto.Set)
	}
	class, err := b.object(id)
	if err != nil {
		return domain.Step{}, err
	}

	raw := dto.Value
	if dto.Ref != "" {
		if dto.Value != nil {
			return domain.Step{}, zerr.With(zerr.Wrap(domain.ErrInvalidStep, "set takes either value or ref"), "set", dto.Set)
		}
		raw = RefPrefix + dto.Ref
	}
	value, ref, err := b.value(class, attrName, raw)
	if err != nil {
		return domain.Step{}, err
	}
	return domain.Step{Kind: domain.StepSet, Object: id, Attribute: attrName, Value: value, Ref: ref}, nil
}
