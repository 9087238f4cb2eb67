package validator

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// validationErrorsImpl 校验错误实现
type validationErrorsImpl struct {
	fieldErrors []FieldError
	message     string
}

// Error 返回错误信息
func (ve *validationErrorsImpl) Error() string {
	return ve.message
}

// Errors 返回错误列表
func (ve *validationErrorsImpl) Errors() []FieldError {
	return ve.fieldErrors
}

// HasErrors 是否有错误
func (ve *validationErrorsImpl) HasErrors() bool {
	return len(ve.fieldErrors) > 0
}

// fieldErrorImpl 字段错误实现
type fieldErrorImpl struct {
	fieldError  validator.FieldError
	message     string
	translators map[string]ut.Translator
}

func (fe *fieldErrorImpl) Field() string {
	return fe.fieldError.Field()
}

func (fe *fieldErrorImpl) Tag() string {
	return fe.fieldError.Tag()
}

func (fe *fieldErrorImpl) Value() any {
	return fe.fieldError.Value()
}

func (fe *fieldErrorImpl) Message() string {
	return fe.message
}

// Translate 翻译错误消息
func (fe *fieldErrorImpl) Translate(lang string) string {
	if trans, exists := fe.translators[lang]; exists {
		return fe.fieldError.Translate(trans)
	}
	return fe.message
}

// HasFieldError 检查是否存在指定字段的错误
func HasFieldError(err error, field string) bool {
	if validationErr, ok := err.(ValidationErrors); ok {
		for _, fieldErr := range validationErr.Errors() {
			if fieldErr.Field() == field {
				return true
			}
		}
	}
	return false
}

// IsValidationError 检查是否为校验错误
func IsValidationError(err error) bool {
	_, ok := err.(ValidationErrors)
	return ok
}
