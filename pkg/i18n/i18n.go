// Package i18n 站点语言：en / jp / ru，默认 en.
// jp 是站点路径使用的代码，对应的 BCP-47 标签是 ja.
package i18n

import (
	"golang.org/x/text/language"
)

// Locale 站点语言代码.
type Locale string

const (
	EN Locale = "en"
	JP Locale = "jp"
	RU Locale = "ru"

	Default = EN
)

// Locales 全部站点语言，顺序即 sitemap 输出顺序.
var Locales = []Locale{EN, JP, RU}

var (
	tags = map[Locale]language.Tag{
		EN: language.English,
		JP: language.Japanese,
		RU: language.Russian,
	}

	// matcher 的顺序与 Locales 一致，第一个为默认
	matcher = language.NewMatcher([]language.Tag{language.English, language.Japanese, language.Russian})
)

// IsLocale 是否为支持的语言代码.
func IsLocale(v string) bool {
	_, ok := tags[Locale(v)]
	return ok
}

// Pick 不支持的值收窄为默认语言.
func Pick(v string) Locale {
	if IsLocale(v) {
		return Locale(v)
	}

	return Default
}

// Tag 返回 BCP-47 标签.
func (l Locale) Tag() language.Tag {
	if t, ok := tags[l]; ok {
		return t
	}

	return tags[Default]
}

// HrefLang sitemap alternate 使用的语言代码.
func (l Locale) HrefLang() string {
	return l.Tag().String()
}

// Match 按 Accept-Language 协商语言.
func Match(acceptLanguage string) Locale {
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	base, _ := tag.Base()

	switch base.String() {
	case "ja":
		return JP
	case "ru":
		return RU
	default:
		return EN
	}
}
