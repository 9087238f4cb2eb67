package validator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// validatorImpl 校验器实现
type validatorImpl struct {
	validator    *validator.Validate
	uni          *ut.UniversalTranslator
	translators  map[string]ut.Translator
	enabledLangs []string
	defaultLang  string
	rules        []Rule
	initErr      error
}

// Validate 全局校验器实例
var (
	Validate Validator
	once     sync.Once
)

func init() {
	once.Do(func() {
		Validate = New()
	})
}

// New 创建新的校验器实例
func New(opts ...ValidationOption) Validator {
	v := &validatorImpl{
		validator:    validator.New(validator.WithRequiredStructEnabled()),
		translators:  make(map[string]ut.Translator),
		enabledLangs: []string{"en", "zh"},
		defaultLang:  "en",
	}

	// 使用 json 标签作为字段名，和配置文件保持一致
	v.validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	enLocale := en.New()
	v.uni = ut.New(enLocale, enLocale, zh.New())

	for _, opt := range opts {
		opt(v)
	}

	v.initTranslators()
	v.initRules()

	return v
}

// initTranslators 初始化翻译器
func (v *validatorImpl) initTranslators() {
	for _, lang := range v.enabledLangs {
		trans, found := v.uni.GetTranslator(lang)
		if !found {
			continue
		}
		switch lang {
		case "en":
			_ = en_translations.RegisterDefaultTranslations(v.validator, trans)
		case "zh":
			_ = zh_translations.RegisterDefaultTranslations(v.validator, trans)
		default:
			continue
		}
		v.translators[lang] = trans
	}
}

// initRules 注册自定义规则及其翻译
func (v *validatorImpl) initRules() {
	for _, rule := range v.rules {
		if err := v.validator.RegisterValidation(rule.Tag, rule.Func); err != nil {
			v.initErr = errors.Join(v.initErr, fmt.Errorf("register rule %q: %w", rule.Tag, err))
			continue
		}
		message := rule.Message
		for _, trans := range v.translators {
			_ = v.validator.RegisterTranslation(rule.Tag, trans,
				func(ut ut.Translator) error {
					return ut.Add(rule.Tag, message, true)
				},
				func(ut ut.Translator, fe validator.FieldError) string {
					t, err := ut.T(fe.Tag(), fe.Field(), fmt.Sprint(fe.Value()))
					if err != nil {
						return fe.Error()
					}
					return t
				},
			)
		}
	}
}

// Struct 校验结构体
func (v *validatorImpl) Struct(s any) error {
	return v.StructCtx(context.Background(), s)
}

// StructCtx 带上下文校验结构体
func (v *validatorImpl) StructCtx(ctx context.Context, s any) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}
	if v.initErr != nil {
		return v.initErr
	}

	if err := v.validator.StructCtx(ctx, s); err != nil {
		return v.translateError(err, v.defaultLang)
	}
	return nil
}

// GetValidator 获取底层的validator实例
func (v *validatorImpl) GetValidator() *validator.Validate {
	return v.validator
}

// translateError 翻译错误
func (v *validatorImpl) translateError(err error, lang string) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	trans, exists := v.translators[lang]
	if !exists {
		return err
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldError := &fieldErrorImpl{
			fieldError:  fe,
			message:     fe.Translate(trans),
			translators: v.translators,
		}
		fieldErrors = append(fieldErrors, fieldError)
		messages = append(messages, fieldError.Message())
	}

	return &validationErrorsImpl{
		fieldErrors: fieldErrors,
		message:     strings.Join(messages, "; "),
	}
}
