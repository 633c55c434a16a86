// Package autowire 基于结构体标签的轻量依赖注入。
//
// 标签格式 `infra:"dep:<component_name>"`，名字以 '?' 结尾表示可选（缺失时跳过）。
// 字段必须导出；注入成功后把依赖追加到组件的运行期依赖，保证启动顺序正确。
package autowire

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/nabeel-hussain/ToDoApp/internal/application/core"
)

type depAdder interface {
	AddDependencies(...string)
}

// InjectAll 遍历容器中的所有组件执行注入，错误汇总后一次返回。
func InjectAll(c *core.Container) error {
	registered := c.ListRegistered()
	names := make([]string, 0, len(registered))
	for n := range registered {
		names = append(names, n)
	}
	sort.Strings(names)

	var errs []string
	for _, name := range names {
		if err := Inject(c, registered[name]); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("autowire errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

func Inject(c *core.Container, comp core.Component) error {
	if comp == nil {
		return nil
	}
	val := reflect.ValueOf(comp)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return nil
	}
	val = val.Elem()
	adder, _ := comp.(depAdder)

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		name, optional, ok := parseTag(field.Tag.Get("infra"))
		if !ok {
			continue
		}
		resolved, err := c.Resolve(name)
		if err != nil {
			if optional {
				continue
			}
			return fmt.Errorf("resolve %s failed: %w", name, err)
		}
		if err := assign(val.Field(i), resolved); err != nil {
			return fmt.Errorf("assign %s -> field %s failed: %w", name, field.Name, err)
		}
		if adder != nil {
			adder.AddDependencies(name)
		}
	}
	return nil
}

func parseTag(tag string) (name string, optional bool, ok bool) {
	if !strings.HasPrefix(tag, "dep:") {
		return "", false, false
	}
	name = strings.TrimSpace(strings.TrimPrefix(tag, "dep:"))
	if strings.HasSuffix(name, "?") {
		optional = true
		name = strings.TrimSpace(strings.TrimSuffix(name, "?"))
	}
	return name, optional, name != ""
}

func assign(dst reflect.Value, src any) error {
	if !dst.CanSet() {
		return fmt.Errorf("destination not settable")
	}
	sv := reflect.ValueOf(src)
	switch {
	case dst.Kind() == reflect.Interface && sv.Type().Implements(dst.Type()):
		dst.Set(sv)
	case sv.Type().AssignableTo(dst.Type()):
		dst.Set(sv)
	default:
		return fmt.Errorf("incompatible types: %s -> %s", sv.Type(), dst.Type())
	}
	return nil
}
