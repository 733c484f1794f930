package media

import (
	"crypto/sha1" //nolint:gosec // 媒体存储 Upload API 规定的签名算法
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// unsignedParams 不参与签名的字段.
var unsignedParams = map[string]bool{
	"file":          true,
	"cloud_name":    true,
	"resource_type": true,
	"api_key":       true,
	"signature":     true,
}

// sign 对 Upload API 参数签名：按键排序拼接 k=v&...，末尾追加 secret 后取 sha1.
// 数组参数（public_ids[]）以逗号连接参与签名.
func sign(params url.Values, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		name := strings.TrimSuffix(k, "[]")
		if unsignedParams[name] {
			continue
		}

		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		return strings.TrimSuffix(keys[i], "[]") < strings.TrimSuffix(keys[j], "[]")
	})

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, strings.TrimSuffix(k, "[]")+"="+strings.Join(params[k], ","))
	}

	sum := sha1.Sum([]byte(strings.Join(parts, "&") + secret)) //nolint:gosec

	return hex.EncodeToString(sum[:])
}

// signedForm 补齐 timestamp、api_key 与 signature.
func signedForm(params url.Values, apiKey, secret string, now time.Time) url.Values {
	form := url.Values{}
	for k, v := range params {
		form[k] = append([]string(nil), v...)
	}

	form.Set("timestamp", strconv.FormatInt(now.Unix(), 10))
	form.Set("signature", sign(form, secret))
	form.Set("api_key", apiKey)

	return form
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
