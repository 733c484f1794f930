package i18n

// NavItem 站点导航项.
type NavItem struct {
	Href     string            `json:"href"`
	Labels   map[Locale]string `json:"labels"`
	Children []NavItem         `json:"children,omitempty"`
}

// LocalizedNav 单语言导航项.
type LocalizedNav struct {
	Href     string         `json:"href"`
	Label    string         `json:"label"`
	Children []LocalizedNav `json:"children,omitempty"`
}

var navItems = []NavItem{
	{
		Href:   "/corporate",
		Labels: map[Locale]string{EN: "For Companies", JP: "法人のお客様", RU: "Для компаний"},
		Children: []NavItem{
			{
				Href:   "/tokyo-business-portraits",
				Labels: map[Locale]string{EN: "Business Portraits", JP: "ビジネスポートレート", RU: "Бизнес-портреты"},
			},
			{
				Href:   "/corporate-events-photography",
				Labels: map[Locale]string{EN: "Corporate Events", JP: "コーポレートイベント", RU: "Корпоративные события"},
			},
		},
	},
	{
		Href:   "/art-galleries-photography",
		Labels: map[Locale]string{EN: "For Art World", JP: "アートの世界", RU: "Для арт-мира"},
	},
	{
		Href:   "/clients",
		Labels: map[Locale]string{EN: "Clients", JP: "クライアント", RU: "Клиенты"},
	},
	{
		Href:   "/about",
		Labels: map[Locale]string{EN: "About", JP: "プロフィール", RU: "О фотографе"},
	},
	{
		Href:   "/contact-booking",
		Labels: map[Locale]string{EN: "Contact", JP: "お問い合わせ", RU: "Контакт"},
	},
}

// Nav 返回某个语言的导航，href 带语言前缀.
func Nav(l Locale) []LocalizedNav {
	return localize(navItems, Pick(string(l)))
}

func localize(items []NavItem, l Locale) []LocalizedNav {
	out := make([]LocalizedNav, 0, len(items))

	for _, it := range items {
		label := it.Labels[l]
		if label == "" {
			label = it.Labels[Default]
		}

		n := LocalizedNav{Href: "/" + string(l) + it.Href, Label: label}
		if len(it.Children) > 0 {
			n.Children = localize(it.Children, l)
		}

		out = append(out, n)
	}

	return out
}
