package desensitize

import (
	"slices"
	"sync"
)

// Hook 按注册顺序依次应用脱敏规则，同名规则覆盖原位置
type Hook struct {
	mu    sync.RWMutex
	rules []Rule
}

// NewHook 创建空钩子
func NewHook() *Hook {
	return &Hook{}
}

func (h *Hook) index(name string) int {
	return slices.IndexFunc(h.rules, func(r Rule) bool { return r.Name() == name })
}

// AddRule 注册规则
func (h *Hook) AddRule(rule Rule) {
	if rule == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if i := h.index(rule.Name()); i >= 0 {
		h.rules[i] = rule
		return
	}
	h.rules = append(h.rules, rule)
}

// AddBuiltin 批量注册规则
func (h *Hook) AddBuiltin(rules ...Rule) {
	for _, rule := range rules {
		h.AddRule(rule)
	}
}

// AddContentRule 编译并注册内容规则
func (h *Hook) AddContentRule(name, pattern, replacement string) error {
	rule, err := NewContentRule(name, pattern, replacement)
	if err != nil {
		return err
	}
	h.AddRule(rule)
	return nil
}

// AddFieldRule 编译并注册 JSON 字段规则
func (h *Hook) AddFieldRule(name, fieldName, pattern, replacement string) error {
	rule, err := NewFieldRule(name, fieldName, pattern, replacement)
	if err != nil {
		return err
	}
	h.AddRule(rule)
	return nil
}

// RemoveRule 移除规则
func (h *Hook) RemoveRule(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.index(name)
	if i < 0 {
		return false
	}
	h.rules = slices.Delete(h.rules, i, i+1)
	return true
}

// EnableRule 启用规则
func (h *Hook) EnableRule(name string) bool {
	return h.toggle(name, true)
}

// DisableRule 禁用规则
func (h *Hook) DisableRule(name string) bool {
	return h.toggle(name, false)
}

func (h *Hook) toggle(name string, enabled bool) bool {
	r, ok := h.GetRule(name)
	if ok {
		r.SetEnabled(enabled)
	}
	return ok
}

// GetRule 按名称查找规则
func (h *Hook) GetRule(name string) (Rule, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i := h.index(name); i >= 0 {
		return h.rules[i], true
	}
	return nil, false
}

// GetRules 按应用顺序返回规则名称
func (h *Hook) GetRules() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, len(h.rules))
	for i, r := range h.rules {
		names[i] = r.Name()
	}
	return names
}

// RuleCount 返回规则数量
func (h *Hook) RuleCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rules)
}

// Desensitize 依次应用所有启用的规则
func (h *Hook) Desensitize(s string) string {
	if s == "" {
		return s
	}

	h.mu.RLock()
	rules := slices.Clone(h.rules)
	h.mu.RUnlock()

	for _, rule := range rules {
		if rule.Enabled() {
			s = rule.Process(s)
		}
	}
	return s
}
