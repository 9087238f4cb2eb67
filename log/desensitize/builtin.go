package desensitize

const redacted = "******"

var (
	// PassphraseRule 口令字段脱敏规则（JSON 中的 passphrase 字段）
	PassphraseRule = MustNewFieldRule("passphrase", "passphrase", `.*`, redacted)

	// PrivateKeyRule 私钥字段脱敏规则
	PrivateKeyRule = MustNewFieldRule("private_key", "private_key", `.*`, redacted)

	// PasswordRule 密码字段脱敏规则
	PasswordRule = MustNewFieldRule("password", "password", `.*`, redacted)

	// TokenRule Token字段脱敏规则
	TokenRule = MustNewFieldRule("token", "token", `.*`, redacted)

	// SecretRule Secret字段脱敏规则
	SecretRule = MustNewFieldRule("secret", "secret", `.*`, redacted)

	// HexKeyRule 长十六进制串脱敏规则，保留首尾各4位 (标量、密钥缓冲区的 dump)
	HexKeyRule = MustNewContentRule(
		"hexkey",
		`\b([0-9a-fA-F]{4})[0-9a-fA-F]{24,}([0-9a-fA-F]{4})\b`,
		"$1****$2",
	)
)

// BuiltinRules 返回所有内置规则
func BuiltinRules() []Rule {
	return []Rule{
		PassphraseRule,
		PrivateKeyRule,
		PasswordRule,
		TokenRule,
		SecretRule,
		HexKeyRule,
	}
}

// NewBuiltinHook 创建加载了全部内置规则的钩子
func NewBuiltinHook() *Hook {
	h := NewHook()
	h.AddBuiltin(BuiltinRules()...)
	return h
}
