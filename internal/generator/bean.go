package generator

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// propKind tells a backend how to render one bean property.
type propKind int

const (
	propValue      propKind = iota // scalar literal
	propFloat                      // float literal, language-specific suffix
	propEnum                       // value qualified by EnumClass
	propList                       // ordered scalar collection
	propClassList                  // ordered collection of class references
	propBean                       // single nested bean
	propBeanList                   // ordered collection of nested beans
	propProperties                 // key/value map literal
	propClassMap                   // ordered name -> class reference map
	propGroups                     // composite index groups
	propEventTypes                 // selected event group names
)

// Pair is one key/value entry of a map-shaped property.
type Pair struct {
	Key   string
	Value string
}

// Prop is one property of a Bean in the neutral generation tree. Which of
// the payload fields is meaningful depends on Kind.
type Prop struct {
	Name string
	Kind propKind

	Value     string
	Quote     bool   // scalar is a string literal in source output
	EnumClass string // propEnum

	Values []string // propList, propClassList, propEventTypes
	Bean   *Bean    // propBean
	Beans  []*Bean  // propBeanList
	Pairs  []Pair   // propProperties, propClassMap

	Groups []FieldGroup // propGroups

	// NewSection asks the backend for a blank line before this property.
	NewSection bool
}

// ctorKind tells a backend how to render one constructor argument.
type ctorKind int

const (
	ctorString  ctorKind = iota // quoted string literal
	ctorSQLType                 // java.sql.Types constant name
	ctorClass                   // class reference
)

type CtorArg struct {
	Kind  ctorKind
	Value string
}

// Bean is one node of the neutral generation tree. The cluster and cache
// walkers build the tree once per generation call; each format backend
// renders it without re-consulting the configuration model.
type Bean struct {
	ID       string // variable name or declarative bean id
	Class    string
	CtorArgs []CtorArg
	Props    []Prop

	// Reference marks a node that stands for an already-declared bean
	// of the same ID; backends emit a reference instead of a second
	// declaration.
	Reference bool
}

func newBean(class string) *Bean {
	return &Bean{Class: class}
}

func (b *Bean) add(p Prop) {
	b.Props = append(b.Props, p)
}

func (b *Bean) value(name, value string, quote bool) {
	b.add(Prop{Name: name, Kind: propValue, Value: value, Quote: quote})
}

func (b *Bean) intValue(name string, v *int) {
	if v != nil {
		b.value(name, strconv.Itoa(*v), false)
	}
}

func (b *Bean) int64Value(name string, v *int64) {
	if v != nil {
		b.value(name, strconv.FormatInt(*v, 10), false)
	}
}

func (b *Bean) boolValue(name string, v bool) {
	if v {
		b.value(name, "true", false)
	}
}

func (b *Bean) stringValue(name, v string) {
	if v != "" {
		b.value(name, v, true)
	}
}

func (b *Bean) enumValue(name, enumClass, v string) {
	if v != "" {
		b.add(Prop{Name: name, Kind: propEnum, Value: v, EnumClass: enumClass})
	}
}

// DataSourceRef is one shared datasource bean required by the generated
// configuration. The caller surfaces these so connection secrets can be
// provisioned alongside the artifact.
type DataSourceRef struct {
	ID      string
	Dialect string
}

// genContext carries the per-generation-call state: the datasource and
// metadata de-duplication registries, keyed by bean identifier and
// metadata name, in first-use order.
type genContext struct {
	dataSources []DataSourceRef
	dsSeen      map[string]bool

	metaBeans map[string]*Bean
	metaRefs  map[string]bool
}

func newGenContext() *genContext {
	return &genContext{
		dsSeen:    make(map[string]bool),
		metaBeans: make(map[string]*Bean),
		metaRefs:  make(map[string]bool),
	}
}

// registerDataSource records id once per generation call. The first dialect
// registered for an id wins.
func (g *genContext) registerDataSource(id, dialect string) {
	if g.dsSeen[id] {
		return
	}
	g.dsSeen[id] = true
	g.dataSources = append(g.dataSources, DataSourceRef{ID: id, Dialect: dialect})
}

// registerMetadata builds the metadata bean on first sight of a name and
// hands out reference nodes afterwards, so each metadata record is
// declared once per generation call no matter how many caches list it.
func (g *genContext) registerMetadata(meta CacheTypeMetadata) *Bean {
	if first, ok := g.metaBeans[meta.Name]; ok {
		g.metaRefs[first.ID] = true
		return &Bean{ID: first.ID, Class: first.Class, Reference: true}
	}
	b := buildTypeMetadataBean(meta)
	g.metaBeans[meta.Name] = b
	return b
}

var nonWordRe = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// beanName derives a deterministic identifier from a user-supplied name:
// non-alphanumeric runs are stripped and the first character is
// capitalized. The result depends only on name, never on list position.
func beanName(prefix, name string) string {
	sanitized := nonWordRe.ReplaceAllString(name, "")
	if sanitized == "" {
		sanitized = "dflt"
	}
	r := []rune(sanitized)
	r[0] = unicode.ToUpper(r[0])
	return prefix + string(r)
}

// buildKindBean constructs the bean for one closed-kind descriptor lookup.
// variant is the active parameter bag (may be a nil pointer, yielding an
// empty default instance). The second result reports whether at least one
// covered field was emitted.
func buildKindBean(phase Phase, field, kind string, table map[string]beanDesc, variant interface{}) (*Bean, bool, error) {
	desc, ok := table[kind]
	if !ok {
		return nil, false, unknownKind(phase, field, kind)
	}

	bean := newBean(desc.Class)

	rv := reflect.ValueOf(variant)
	if !rv.IsValid() || (rv.Kind() == reflect.Ptr && rv.IsNil()) {
		return bean, false, nil
	}
	rv = reflect.Indirect(rv)

	for _, fd := range desc.Fields {
		fv := rv.FieldByName(fd.Field)
		if !fv.IsValid() {
			continue
		}
		if err := appendField(bean, phase, fd, fv); err != nil {
			return nil, false, err
		}
	}
	return bean, len(bean.Props) > 0, nil
}

// appendField renders one descriptor-covered model field into bean,
// following the field-kind dispatch rules.
func appendField(bean *Bean, phase Phase, fd fieldDesc, fv reflect.Value) error {
	switch fd.Kind {
	case fkValue:
		switch fv.Kind() {
		case reflect.String:
			bean.stringValue(fd.Prop, fv.String())
		case reflect.Bool:
			bean.boolValue(fd.Prop, fv.Bool())
		case reflect.Ptr:
			if !fv.IsNil() {
				bean.value(fd.Prop, formatScalar(fv.Elem()), false)
			}
		default:
			return &MalformedFieldError{Phase: phase, Field: fd.Prop, Reason: "unsupported value shape"}
		}
	case fkFloat:
		if fv.Kind() == reflect.Ptr && !fv.IsNil() {
			bean.add(Prop{
				Name:  fd.Prop,
				Kind:  propFloat,
				Value: strconv.FormatFloat(fv.Elem().Float(), 'g', -1, 64),
			})
		}
	case fkList:
		if vals, ok := fv.Interface().([]string); ok && len(vals) > 0 {
			bean.add(Prop{Name: fd.Prop, Kind: propList, Values: vals})
		}
	case fkEnum:
		bean.enumValue(fd.Prop, fd.EnumClass, fv.String())
	case fkClassName:
		name := fv.String()
		if name == "" {
			return nil
		}
		cls, ok := fd.Classes[name]
		if !ok {
			return unknownKind(phase, fd.Prop, name)
		}
		bean.add(Prop{Name: fd.Prop, Kind: propBean, Bean: newBean(cls)})
	case fkProperties:
		vals, _ := fv.Interface().([]string)
		if len(vals) == 0 {
			return nil
		}
		pairs := make([]Pair, 0, len(vals))
		for _, v := range vals {
			key, val, found := strings.Cut(v, "=")
			if !found {
				return &MalformedFieldError{Phase: phase, Field: fd.Prop, Reason: "entry " + strconv.Quote(v) + " has no '='"}
			}
			pairs = append(pairs, Pair{Key: key, Value: val})
		}
		bean.add(Prop{Name: fd.Prop, Kind: propProperties, Pairs: pairs})
	}
	return nil
}

func formatScalar(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Int, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return v.String()
	}
}
