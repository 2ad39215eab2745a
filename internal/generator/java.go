package generator

import "strings"

// generateJava renders the bean tree as a Java source snippet or, when
// asClass is set, a complete factory class. The import block is synthesized
// from the emitter's recorded type references after the body is rendered.
func generateJava(root *Bean, ctx *genContext, opts Options) (string, error) {
	em := NewEmitter()
	if opts.GenerateAsClass {
		em.indent = 2
	}

	short := em.ImportClass(root.Class)
	em.Line(short + " " + root.ID + " = new " + short + "();")
	em.NeedEmptyLine = true

	if len(ctx.dataSources) > 0 {
		javaDataSources(em, ctx.dataSources)
	}

	for i := range root.Props {
		if err := javaProp(em, root.ID, &root.Props[i]); err != nil {
			return "", err
		}
	}

	if opts.GenerateAsClass {
		return javaClassShell(em, root, ctx), nil
	}

	var sb strings.Builder
	sb.WriteString(em.GenerateImports())
	sb.WriteByte('\n')
	sb.WriteString(em.String())
	return sb.String(), nil
}

// javaDataSources loads the companion secrets file once and declares each
// shared datasource variable exactly once per generation call.
func javaDataSources(em *Emitter, dataSources []DataSourceRef) {
	props := em.ImportClass("java.util.Properties")
	in := em.ImportClass("java.io.InputStream")
	em.ImportClass("java.io.FileInputStream")

	em.Line(props + " secretProps = new " + props + "();")
	em.NeedEmptyLine = true
	em.StartBlock("try (" + in + " in = new FileInputStream(\"secret.properties\")) {")
	em.Line("secretProps.load(in);")
	em.EndBlock("}")
	em.NeedEmptyLine = true

	for _, ds := range dataSources {
		cls := em.ImportClass(dataSourceClasses[ds.Dialect])
		em.Line(cls + " " + ds.ID + " = new " + cls + "();")
		em.NeedEmptyLine = true
		em.Line(ds.ID + ".setUrl(secretProps.getProperty(\"" + ds.ID + ".jdbc.url\"));")
		em.Line(ds.ID + ".setUser(secretProps.getProperty(\"" + ds.ID + ".jdbc.username\"));")
		em.Line(ds.ID + ".setPassword(secretProps.getProperty(\"" + ds.ID + ".jdbc.password\"));")
		em.NeedEmptyLine = true
	}
}

func javaProp(em *Emitter, parent string, p *Prop) error {
	if p.NewSection {
		em.NeedEmptyLine = true
	}
	setter := parent + "." + setterName(p.Name)

	switch p.Kind {
	case propValue:
		if p.Quote {
			em.Line(setter + "(\"" + escapeJava(p.Value) + "\");")
		} else {
			em.Line(setter + "(" + p.Value + ");")
		}
	case propFloat:
		em.Line(setter + "(" + p.Value + "f);")
	case propEnum:
		enum := em.ImportClass(p.EnumClass)
		em.Line(setter + "(" + enum + "." + p.Value + ");")
	case propList:
		em.ImportClass("java.util.Arrays")
		quoted := make([]string, len(p.Values))
		for i, v := range p.Values {
			quoted[i] = "\"" + escapeJava(v) + "\""
		}
		em.Line(setter + "(Arrays.asList(" + strings.Join(quoted, ", ") + "));")
	case propClassList:
		refs := make([]string, len(p.Values))
		for i, v := range p.Values {
			refs[i] = em.ImportClass(v) + ".class"
		}
		em.Line(setter + "(" + strings.Join(refs, ", ") + ");")
	case propBean:
		return javaNestedBean(em, parent, p)
	case propBeanList:
		return javaBeanList(em, parent, p)
	case propProperties:
		javaProperties(em, parent, p)
	case propClassMap:
		javaClassMap(em, parent, p)
	case propGroups:
		javaGroups(em, parent, p)
	case propEventTypes:
		javaEventTypes(em, parent, p)
	}
	return nil
}

// javaNestedBean declares the nested bean as its own variable, fills it,
// then attaches it. A bean with no properties is constructed inline.
func javaNestedBean(em *Emitter, parent string, p *Prop) error {
	b := p.Bean
	short := em.ImportClass(b.Class)
	setter := parent + "." + setterName(p.Name)

	if len(b.Props) == 0 {
		em.Line(setter + "(new " + short + "());")
		return nil
	}

	varName := b.ID
	if varName == "" {
		varName = childVar(parent, p.Name)
	}

	em.NeedEmptyLine = true
	em.Line(short + " " + varName + " = new " + short + "();")
	em.NeedEmptyLine = true
	for i := range b.Props {
		if err := javaProp(em, varName, &b.Props[i]); err != nil {
			return err
		}
	}
	em.NeedEmptyLine = true
	em.Line(setter + "(" + varName + ");")
	em.NeedEmptyLine = true
	return nil
}

// javaBeanList renders an ordered collection of beans. The aggregate cache
// list is attached through the varargs setter; other lists go through a
// Collection. Beans carrying only constructor arguments are added inline.
func javaBeanList(em *Emitter, parent string, p *Prop) error {
	setter := parent + "." + setterName(p.Name)

	if p.Name == "cacheConfiguration" {
		names := make([]string, len(p.Beans))
		for i, b := range p.Beans {
			if err := javaDeclareBean(em, b); err != nil {
				return err
			}
			names[i] = b.ID
		}
		em.NeedEmptyLine = true
		em.Line(setter + "(" + strings.Join(names, ", ") + ");")
		em.NeedEmptyLine = true
		return nil
	}

	coll := em.ImportClass("java.util.Collection")
	em.ImportClass("java.util.ArrayList")
	itemShort := em.ImportClass(p.Beans[0].Class)
	listVar := childVar(parent, p.Name)

	em.NeedEmptyLine = true
	em.Line(coll + "<" + itemShort + "> " + listVar + " = new ArrayList<>();")
	em.NeedEmptyLine = true
	for _, b := range p.Beans {
		if b.Reference {
			em.Line(listVar + ".add(" + b.ID + ");")
			continue
		}
		if len(b.Props) == 0 {
			em.Line(listVar + ".add(" + javaCtorExpr(em, b) + ");")
			continue
		}
		if err := javaDeclareBean(em, b); err != nil {
			return err
		}
		em.Line(listVar + ".add(" + b.ID + ");")
		em.NeedEmptyLine = true
	}
	em.NeedEmptyLine = true
	em.Line(setter + "(" + listVar + ");")
	em.NeedEmptyLine = true
	return nil
}

// javaDeclareBean declares a named bean variable and fills its properties.
func javaDeclareBean(em *Emitter, b *Bean) error {
	short := em.ImportClass(b.Class)
	em.NeedEmptyLine = true
	em.Line(short + " " + b.ID + " = new " + short + "();")
	em.NeedEmptyLine = true
	for i := range b.Props {
		if err := javaProp(em, b.ID, &b.Props[i]); err != nil {
			return err
		}
	}
	em.NeedEmptyLine = true
	return nil
}

// javaCtorExpr renders a constructor call for a bean whose identity lives
// entirely in its constructor arguments.
func javaCtorExpr(em *Emitter, b *Bean) string {
	short := em.ImportClass(b.Class)
	args := make([]string, len(b.CtorArgs))
	for i, arg := range b.CtorArgs {
		switch arg.Kind {
		case ctorString:
			args[i] = "\"" + escapeJava(arg.Value) + "\""
		case ctorSQLType:
			types := em.ImportClass(clsSQLTypes)
			args[i] = types + "." + arg.Value
		case ctorClass:
			args[i] = em.ImportClass(arg.Value) + ".class"
		}
	}
	return "new " + short + "(" + strings.Join(args, ", ") + ")"
}

func javaProperties(em *Emitter, parent string, p *Prop) {
	props := em.ImportClass("java.util.Properties")
	varName := childVar(parent, p.Name)

	em.NeedEmptyLine = true
	em.Line(props + " " + varName + " = new " + props + "();")
	em.NeedEmptyLine = true
	for _, pair := range p.Pairs {
		em.Line(varName + ".setProperty(\"" + escapeJava(pair.Key) + "\", \"" + escapeJava(pair.Value) + "\");")
	}
	em.NeedEmptyLine = true
	em.Line(parent + "." + setterName(p.Name) + "(" + varName + ");")
	em.NeedEmptyLine = true
}

func javaClassMap(em *Emitter, parent string, p *Prop) {
	em.ImportClass("java.util.Map")
	em.ImportClass("java.util.LinkedHashMap")
	varName := childVar(parent, p.Name)

	em.NeedEmptyLine = true
	em.Line("Map<String, Class<?>> " + varName + " = new LinkedHashMap<>();")
	em.NeedEmptyLine = true
	for _, pair := range p.Pairs {
		em.Line(varName + ".put(\"" + escapeJava(pair.Key) + "\", " + em.ImportClass(pair.Value) + ".class);")
	}
	em.NeedEmptyLine = true
	em.Line(parent + "." + setterName(p.Name) + "(" + varName + ");")
	em.NeedEmptyLine = true
}

// javaGroups renders composite index groups as nested ordered maps of
// field name to (class, descending) tuples.
func javaGroups(em *Emitter, parent string, p *Prop) {
	em.ImportClass("java.util.Map")
	em.ImportClass("java.util.LinkedHashMap")
	tuple := em.ImportClass(clsIgniteBiTuple)
	groupsVar := childVar(parent, p.Name)
	entryType := "LinkedHashMap<String, " + tuple + "<Class<?>, Boolean>>"

	em.NeedEmptyLine = true
	em.Line("Map<String, " + entryType + "> " + groupsVar + " = new LinkedHashMap<>();")
	em.NeedEmptyLine = true

	for _, grp := range p.Groups {
		grpVar := beanName("grp", grp.Name)
		em.Line(entryType + " " + grpVar + " = new " + entryType + "();")
		em.NeedEmptyLine = true
		for _, f := range grp.Fields {
			desc := "false"
			if f.Descending {
				desc = "true"
			}
			em.Line(grpVar + ".put(\"" + escapeJava(f.Name) + "\", new " + tuple + "<Class<?>, Boolean>(" +
				em.ImportClass(f.ClassName) + ".class, " + desc + "));")
		}
		em.NeedEmptyLine = true
		em.Line(groupsVar + ".put(\"" + escapeJava(grp.Name) + "\", " + grpVar + ");")
		em.NeedEmptyLine = true
	}

	em.Line(parent + "." + setterName(p.Name) + "(" + groupsVar + ");")
	em.NeedEmptyLine = true
}

// javaEventTypes emits a single group as a direct constant reference and
// multiple groups through the array-concatenation idiom, so only the
// selected groups are ever referenced.
func javaEventTypes(em *Emitter, parent string, p *Prop) {
	events := em.ImportClass(clsEventType)
	setter := parent + "." + setterName(p.Name)

	if len(p.Values) == 1 {
		em.Line(setter + "(" + events + "." + p.Values[0] + ");")
		return
	}

	lens := make([]string, len(p.Values))
	for i, g := range p.Values {
		lens[i] = events + "." + g + ".length"
	}

	em.NeedEmptyLine = true
	em.Line("int[] events = new int[" + strings.Join(lens, " + ") + "];")
	em.NeedEmptyLine = true
	em.Line("int k = 0;")
	em.NeedEmptyLine = true
	for i, g := range p.Values {
		ref := events + "." + g
		em.Line("System.arraycopy(" + ref + ", 0, events, k, " + ref + ".length);")
		if i < len(p.Values)-1 {
			em.Line("k += " + ref + ".length;")
		}
		em.NeedEmptyLine = true
	}
	em.Line(setter + "(events);")
	em.NeedEmptyLine = true
}

// javaClassShell wraps the rendered body in a factory class with a single
// static create method.
func javaClassShell(em *Emitter, root *Bean, ctx *genContext) string {
	rootShort := shortName(root.Class)

	var sb strings.Builder
	sb.WriteString("package config;\n\n")
	sb.WriteString(em.GenerateImports())
	sb.WriteString("\n")
	sb.WriteString("/**\n")
	sb.WriteString(" * " + rootShort + " factory.\n")
	sb.WriteString(" */\n")
	sb.WriteString("public class ConfigurationFactory {\n")
	if len(ctx.dataSources) > 0 {
		sb.WriteString(indentUnit + "public static " + rootShort + " createConfiguration() throws Exception {\n")
	} else {
		sb.WriteString(indentUnit + "public static " + rootShort + " createConfiguration() {\n")
	}
	sb.WriteString(em.String())
	sb.WriteString("\n")
	sb.WriteString(indentUnit + indentUnit + "return " + root.ID + ";\n")
	sb.WriteString(indentUnit + "}\n")
	sb.WriteString("}\n")
	return sb.String()
}

func setterName(prop string) string {
	return "set" + strings.ToUpper(prop[:1]) + prop[1:]
}

// childVar derives a deterministic, collision-free variable name for a
// value nested under parent. Children of the root configuration keep their
// bare property name. A property whose leading word repeats the parent's
// prefix drops that word, so cacheA plus cacheStoreFactory yields
// cacheAStoreFactory rather than cacheACacheStoreFactory.
func childVar(parent, prop string) string {
	if parent == "cfg" {
		return prop
	}
	head := prop
	if idx := strings.IndexFunc(prop, isUpper); idx > 0 {
		head = prop[:idx]
	}
	if head != prop && strings.HasPrefix(parent, head) {
		return parent + prop[len(head):]
	}
	return parent + strings.ToUpper(prop[:1]) + prop[1:]
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func shortName(fqcn string) string {
	if idx := strings.LastIndex(fqcn, "."); idx >= 0 {
		return fqcn[idx+1:]
	}
	return fqcn
}

var javaEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
)

func escapeJava(s string) string {
	return javaEscaper.Replace(s)
}
