package generator

import "strings"

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>

<beans xmlns="http://www.springframework.org/schema/beans"
       xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
       xmlns:util="http://www.springframework.org/schema/util"
       xsi:schemaLocation="http://www.springframework.org/schema/beans
                           http://www.springframework.org/schema/beans/spring-beans.xsd
                           http://www.springframework.org/schema/util
                           http://www.springframework.org/schema/util/spring-util.xsd">
`

const placeholderConfigurerClass = "org.springframework.beans.factory.config.PropertyPlaceholderConfigurer"

// generateSpringXML renders the bean tree as a declarative Spring document.
// Shared datasources are emitted as top-level beans ahead of the root
// configuration bean, with connection settings referencing the companion
// secrets file through property placeholders.
func generateSpringXML(root *Bean, ctx *genContext) (string, error) {
	em := NewEmitter()

	em.Append(xmlHeader)
	em.indent++

	if len(ctx.dataSources) > 0 {
		em.StartBlock(`<bean class="` + placeholderConfigurerClass + `">`)
		em.Line(`<property name="location" value="classpath:secret.properties"/>`)
		em.EndBlock("</bean>")
		em.NeedEmptyLine = true

		for _, ds := range ctx.dataSources {
			cls := dataSourceClasses[ds.Dialect]
			em.StartBlock(`<bean id="` + escapeXML(ds.ID) + `" class="` + cls + `">`)
			em.Line(`<property name="url" value="${` + ds.ID + `.jdbc.url}"/>`)
			em.Line(`<property name="user" value="${` + ds.ID + `.jdbc.username}"/>`)
			em.Line(`<property name="password" value="${` + ds.ID + `.jdbc.password}"/>`)
			em.EndBlock("</bean>")
			em.NeedEmptyLine = true
		}
	}

	xmlBean(em, ctx.metaRefs, root, "")
	em.EndBlock("</beans>")

	return em.String(), nil
}

// xmlBean renders one bean element. id is empty for inline beans; refs
// carries the ids that later reference nodes point back to, so their
// first occurrence keeps an id attribute.
func xmlBean(em *Emitter, refs map[string]bool, b *Bean, id string) {
	open := `<bean class="` + b.Class + `">`
	if id != "" {
		open = `<bean id="` + escapeXML(id) + `" class="` + b.Class + `">`
	}
	if len(b.Props) == 0 && len(b.CtorArgs) == 0 {
		em.Line(strings.TrimSuffix(open, ">") + "/>")
		return
	}
	em.StartBlock(open)
	for _, arg := range b.CtorArgs {
		switch arg.Kind {
		case ctorSQLType:
			em.StartBlock("<constructor-arg>")
			em.Line(`<util:constant static-field="` + clsSQLTypes + `.` + arg.Value + `"/>`)
			em.EndBlock("</constructor-arg>")
		default:
			em.Line(`<constructor-arg value="` + escapeXML(arg.Value) + `"/>`)
		}
	}
	for i := range b.Props {
		if b.Props[i].NewSection && i > 0 {
			em.NeedEmptyLine = true
		}
		xmlProp(em, refs, &b.Props[i])
	}
	em.EndBlock("</bean>")
}

func xmlProp(em *Emitter, refs map[string]bool, p *Prop) {
	switch p.Kind {
	case propValue, propFloat, propEnum:
		em.Line(`<property name="` + p.Name + `" value="` + escapeXML(p.Value) + `"/>`)
	case propList, propClassList:
		em.StartBlock(`<property name="` + p.Name + `">`)
		em.StartBlock("<list>")
		for _, v := range p.Values {
			em.Line("<value>" + escapeXML(v) + "</value>")
		}
		em.EndBlock("</list>")
		em.EndBlock("</property>")
	case propBean:
		em.StartBlock(`<property name="` + p.Name + `">`)
		xmlBean(em, refs, p.Bean, "")
		em.EndBlock("</property>")
	case propBeanList:
		em.StartBlock(`<property name="` + p.Name + `">`)
		em.StartBlock("<list>")
		for _, b := range p.Beans {
			switch {
			case b.Reference:
				em.Line(`<ref bean="` + escapeXML(b.ID) + `"/>`)
			case refs[b.ID]:
				xmlBean(em, refs, b, b.ID)
			default:
				xmlBean(em, refs, b, "")
			}
		}
		em.EndBlock("</list>")
		em.EndBlock("</property>")
	case propProperties:
		em.StartBlock(`<property name="` + p.Name + `">`)
		em.StartBlock("<props>")
		for _, pair := range p.Pairs {
			em.Line(`<prop key="` + escapeXML(pair.Key) + `">` + escapeXML(pair.Value) + "</prop>")
		}
		em.EndBlock("</props>")
		em.EndBlock("</property>")
	case propClassMap:
		em.StartBlock(`<property name="` + p.Name + `">`)
		em.StartBlock("<map>")
		for _, pair := range p.Pairs {
			em.Line(`<entry key="` + escapeXML(pair.Key) + `" value="` + escapeXML(pair.Value) + `"/>`)
		}
		em.EndBlock("</map>")
		em.EndBlock("</property>")
	case propGroups:
		xmlGroups(em, p)
	case propEventTypes:
		em.StartBlock(`<property name="` + p.Name + `">`)
		em.StartBlock("<list>")
		for _, g := range p.Values {
			em.Line(`<util:constant static-field="` + clsEventType + `.` + g + `"/>`)
		}
		em.EndBlock("</list>")
		em.EndBlock("</property>")
	}
}

func xmlGroups(em *Emitter, p *Prop) {
	em.StartBlock(`<property name="` + p.Name + `">`)
	em.StartBlock("<map>")
	for _, grp := range p.Groups {
		em.StartBlock(`<entry key="` + escapeXML(grp.Name) + `">`)
		em.StartBlock("<map>")
		for _, f := range grp.Fields {
			em.StartBlock(`<entry key="` + escapeXML(f.Name) + `">`)
			em.StartBlock(`<bean class="` + clsIgniteBiTuple + `">`)
			em.Line(`<constructor-arg value="` + escapeXML(f.ClassName) + `"/>`)
			if f.Descending {
				em.Line(`<constructor-arg value="true"/>`)
			} else {
				em.Line(`<constructor-arg value="false"/>`)
			}
			em.EndBlock("</bean>")
			em.EndBlock("</entry>")
		}
		em.EndBlock("</map>")
		em.EndBlock("</entry>")
	}
	em.EndBlock("</map>")
	em.EndBlock("</property>")
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
