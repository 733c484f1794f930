package handle

import (
	"encoding/xml"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/folio/pkg/configs"
	"github.com/yeisme/folio/pkg/i18n"
)

const (
	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xhtmlNS   = "http://www.w3.org/1999/xhtml"
)

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod"`
	ChangeFreq string      `xml:"changefreq"`
	Priority   string      `xml:"priority"`
	Alternates []alternate `xml:"xhtml:link"`
}

type alternate struct {
	Rel      string `xml:"rel,attr"`
	HrefLang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// Sitemap GET /sitemap.xml.
func Sitemap(c *gin.Context) {
	body, err := BuildSitemap(configs.GetConfig().Site, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Robots GET /robots.txt.
func Robots(c *gin.Context) {
	c.String(http.StatusOK, BuildRobots(configs.GetConfig().Site))
}

// BuildSitemap 为每个 locale 与页面生成一条记录，并附带全部语言的 hreflang.
func BuildSitemap(site configs.SiteConfig, now time.Time) ([]byte, error) {
	locales := siteLocales(site)
	lastMod := now.UTC().Format(time.RFC3339)

	set := urlSet{Xmlns: sitemapNS, XHTML: xhtmlNS}

	for _, l := range locales {
		for _, route := range site.Routes {
			u := sitemapURL{
				Loc:        site.URL("/" + string(l) + route),
				LastMod:    lastMod,
				ChangeFreq: changeFreq(route),
				Priority:   strconv.FormatFloat(priority(route), 'f', 1, 64),
			}

			for _, alt := range locales {
				u.Alternates = append(u.Alternates, alternate{
					Rel:      "alternate",
					HrefLang: alt.HrefLang(),
					Href:     site.URL("/" + string(alt) + route),
				})
			}

			set.URLs = append(set.URLs, u)
		}
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), out...), nil
}

// BuildRobots 生成 robots.txt.
func BuildRobots(site configs.SiteConfig) string {
	var b strings.Builder

	b.WriteString("User-Agent: *\n")
	b.WriteString("Allow: /\n")

	for _, p := range []string{"/api/", "/admin", "/admin/"} {
		b.WriteString("Disallow: " + p + "\n")
	}

	b.WriteString("\nSitemap: " + site.URL("/sitemap.xml") + "\n")

	return b.String()
}

func siteLocales(site configs.SiteConfig) []i18n.Locale {
	var out []i18n.Locale

	for _, v := range site.Locales {
		if i18n.IsLocale(v) {
			out = append(out, i18n.Locale(v))
		}
	}

	if len(out) == 0 {
		return i18n.Locales
	}

	return out
}

func changeFreq(route string) string {
	if route == "" {
		return "weekly"
	}

	return "monthly"
}

func priority(route string) float64 {
	switch {
	case route == "":
		return 1.0
	case strings.Contains(route, "contact"), strings.Contains(route, "corporate"):
		return 0.9
	default:
		return 0.8
	}
}
