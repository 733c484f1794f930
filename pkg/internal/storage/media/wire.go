package media

import (
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yeisme/folio/pkg/internal/types"
)

// rawResource 媒体存储 Admin API 返回的资源结构.
type rawResource struct {
	PublicID  string         `json:"public_id"`
	SecureURL string         `json:"secure_url"`
	URL       string         `json:"url"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Bytes     int64          `json:"bytes"`
	CreatedAt string         `json:"created_at"`
	Tags      []string       `json:"tags"`
	Context   map[string]any `json:"context"`
}

type listResponse struct {
	Resources  []rawResource `json:"resources"`
	NextCursor string        `json:"next_cursor"`
}

func decodeList(body []byte) (listResponse, error) {
	var out listResponse
	err := sonic.Unmarshal(body, &out)

	return out, err
}

// normalize 把原始资源转换为领域结构.
func (r rawResource) normalize() types.MediaResource {
	url := r.SecureURL
	if url == "" {
		url = r.URL
	}

	created, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		created = time.Time{}
	}

	res := types.MediaResource{
		PublicID:  r.PublicID,
		URL:       url,
		Width:     max(r.Width, 0),
		Height:    max(r.Height, 0),
		Bytes:     r.Bytes,
		CreatedAt: created.UTC(),
		Tags:      r.Tags,
		Metadata:  contextFields(r.Context),
	}

	return res
}

// contextFields 优先读取 context.custom，没有时读取扁平 context.
func contextFields(ctx map[string]any) map[string]string {
	if len(ctx) == 0 {
		return nil
	}

	src := ctx
	if custom, ok := ctx["custom"].(map[string]any); ok {
		src = custom
	}

	out := make(map[string]string, len(src))

	for k, v := range src {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(val)
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// encodeContext 生成 "k=v|k2=v2"，值中的 = 与 | 需要转义.
func encodeContext(fields map[string]string) string {
	keys := sortedKeys(fields)
	parts := make([]string, 0, len(keys))

	escaper := strings.NewReplacer(`=`, `\=`, `|`, `\|`)
	for _, k := range keys {
		parts = append(parts, escaper.Replace(k)+"="+escaper.Replace(fields[k]))
	}

	return strings.Join(parts, "|")
}
