package desensitize

import (
	"fmt"
	"regexp"
	"sync/atomic"

	"github.com/kochabx/seccure/errors"
)

var (
	ErrRuleName    = errors.Precondition("desensitize: rule name is empty")
	ErrRulePattern = errors.Precondition("desensitize: invalid pattern")
)

// Rule 脱敏规则
type Rule interface {
	Name() string
	Enabled() bool
	SetEnabled(enabled bool)
	// Process 返回脱敏后的文本
	Process(s string) string
}

// base 规则公共部分：名称与启用开关
type base struct {
	name     string
	disabled atomic.Bool
}

func (b *base) Name() string            { return b.name }
func (b *base) Enabled() bool           { return !b.disabled.Load() }
func (b *base) SetEnabled(enabled bool) { b.disabled.Store(!enabled) }

func compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, ErrRulePattern.WithCausef("pattern is empty")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, ErrRulePattern.WithCause(err)
	}
	return re, nil
}

func must[R Rule](r R, err error) R {
	if err != nil {
		panic(err)
	}
	return r
}

// ContentRule 对整行文本做正则替换
type ContentRule struct {
	base
	pattern     *regexp.Regexp
	replacement string
}

// NewContentRule 创建内容规则，replacement 支持 $1 形式的分组引用
func NewContentRule(name, pattern, replacement string) (*ContentRule, error) {
	if name == "" {
		return nil, ErrRuleName
	}
	re, err := compile(pattern)
	if err != nil {
		return nil, err
	}
	return &ContentRule{base: base{name: name}, pattern: re, replacement: replacement}, nil
}

// MustNewContentRule 用于内置规则，编译失败时 panic
func MustNewContentRule(name, pattern, replacement string) *ContentRule {
	return must[*ContentRule](NewContentRule(name, pattern, replacement))
}

func (r *ContentRule) Process(s string) string {
	return r.pattern.ReplaceAllString(s, r.replacement)
}

// FieldRule 只替换 JSON 日志中指定字符串字段的值
type FieldRule struct {
	base
	field       *regexp.Regexp // "name":"value"
	value       *regexp.Regexp
	replacement string
}

// NewFieldRule 创建字段规则，pattern 作用于字段值
func NewFieldRule(name, fieldName, pattern, replacement string) (*FieldRule, error) {
	if name == "" || fieldName == "" {
		return nil, ErrRuleName
	}
	value, err := compile(pattern)
	if err != nil {
		return nil, err
	}
	field := regexp.MustCompile(fmt.Sprintf(`("%s"\s*:\s*")([^"]*)(")`, regexp.QuoteMeta(fieldName)))
	return &FieldRule{
		base:        base{name: name},
		field:       field,
		value:       value,
		replacement: replacement,
	}, nil
}

// MustNewFieldRule 用于内置规则，编译失败时 panic
func MustNewFieldRule(name, fieldName, pattern, replacement string) *FieldRule {
	return must[*FieldRule](NewFieldRule(name, fieldName, pattern, replacement))
}

func (r *FieldRule) Process(s string) string {
	return r.field.ReplaceAllStringFunc(s, func(match string) string {
		m := r.field.FindStringSubmatch(match)
		return m[1] + r.value.ReplaceAllString(m[2], r.replacement) + m[3]
	})
}
