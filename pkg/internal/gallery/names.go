// Package gallery 定义公开图集、方向判定与排序规则，不依赖任何存储实现.
package gallery

import (
	"fmt"

	"github.com/yeisme/folio/pkg/internal/types"
)

// Name 图集名称.
type Name string

const (
	Portraits Name = "portraits"
	Corporate Name = "corporate"
	Art       Name = "art"
	Featured  Name = "featured"
	Portfolio Name = "portfolio"
)

// Source 图集数据来源.
type Source int

const (
	SourceFolder Source = iota // 按目录列举
	SourceTag                  // 按标签列举
)

// Definition 图集定义.
type Definition struct {
	Name   Name
	Label  string
	Source Source
}

// definitions 顺序即管理后台的展示顺序.
var definitions = []Definition{
	{Name: Portraits, Label: "Business Portraits", Source: SourceFolder},
	{Name: Corporate, Label: "Corporate Events", Source: SourceFolder},
	{Name: Art, Label: "Art & Galleries", Source: SourceFolder},
	{Name: Featured, Label: "Featured (Home)", Source: SourceTag},
	{Name: Portfolio, Label: "Portfolio", Source: SourceFolder},
}

// ErrUnknownGallery 未知图集.
var ErrUnknownGallery = fmt.Errorf("unknown gallery")

// All 返回全部图集定义的副本.
func All() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)

	return out
}

// Names 返回全部图集名称.
func Names() []Name {
	names := make([]Name, 0, len(definitions))
	for _, d := range definitions {
		names = append(names, d.Name)
	}

	return names
}

// Lookup 按名称查找图集定义.
func Lookup(name string) (Definition, error) {
	for _, d := range definitions {
		if string(d.Name) == name {
			return d, nil
		}
	}

	return Definition{}, fmt.Errorf("%w: %q", ErrUnknownGallery, name)
}

// Info 生成对外描述，folder 由根目录拼接，标签图集只带 tag.
func (d Definition) Info(rootFolder, tag string) types.GalleryInfo {
	info := types.GalleryInfo{Name: string(d.Name), Label: d.Label}
	if d.Source == SourceTag {
		info.Tag = tag
	} else {
		info.Folder = rootFolder + "/" + string(d.Name)
	}

	return info
}
