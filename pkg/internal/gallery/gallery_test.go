package gallery_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/folio/pkg/internal/gallery"
	"github.com/yeisme/folio/pkg/internal/types"
)

const orderKey = "featured_order"

func TestAspectOf(t *testing.T) {
	cases := []struct {
		w, h int
		want types.Aspect
	}{
		{800, 1200, types.AspectPortrait},
		{1200, 800, types.AspectLandscape},
		{1000, 1000, types.AspectSquare},
		{850, 1000, types.AspectSquare},  // 0.85 不算竖图
		{1150, 1000, types.AspectSquare}, // 1.15 不算横图
		{849, 1000, types.AspectPortrait},
		{1151, 1000, types.AspectLandscape},
		{1000, 0, types.AspectSquare},
		{0, 0, types.AspectSquare},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, gallery.AspectOf(tc.w, tc.h), "%dx%d", tc.w, tc.h)
	}
}

func resource(id string, created time.Time, order string) types.MediaResource {
	r := types.MediaResource{PublicID: id, CreatedAt: created, Width: 100, Height: 100}
	if order != "" {
		r.Metadata = map[string]string{orderKey: order}
	}

	return r
}

func TestSortFeatured(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	resources := []types.MediaResource{
		resource("A", base.Add(1*time.Hour), "3"),
		resource("B", base.Add(2*time.Hour), "1"),
		resource("C", base, ""),
		resource("D", base.Add(3*time.Hour), "2"),
	}

	gallery.SortFeatured(resources, orderKey)
	assert.Equal(t, []string{"B", "D", "A", "C"}, gallery.IDs(resources))
}

func TestSortFeaturedTieBreak(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	resources := []types.MediaResource{
		resource("late-missing", base.Add(5*time.Hour), ""),
		resource("dup-late", base.Add(2*time.Hour), "1"),
		resource("bogus", base.Add(-time.Hour), "abc"),
		resource("dup-early", base.Add(1*time.Hour), "1"),
		resource("negative", base.Add(4*time.Hour), "-2"),
	}

	gallery.SortFeatured(resources, orderKey)
	assert.Equal(t, []string{"dup-early", "dup-late", "bogus", "negative", "late-missing"}, gallery.IDs(resources))
	assert.Equal(t, 1, gallery.MaxOrder(resources, orderKey))
}

func TestSortChronological(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	resources := []types.MediaResource{
		resource("b", base.Add(time.Minute), ""),
		resource("c", base, ""),
		resource("a", base, ""),
	}

	gallery.SortChronological(resources)
	assert.Equal(t, []string{"a", "c", "b"}, gallery.IDs(resources))
}

func TestToImage(t *testing.T) {
	r := types.MediaResource{
		PublicID: "eva/portraits/ceo-tokyo",
		URL:      "https://res.example.com/ceo.jpg",
		Width:    800,
		Height:   1200,
	}

	img := gallery.ToImage(r)
	assert.Equal(t, "ceo-tokyo", img.Alt)
	assert.Equal(t, types.AspectPortrait, img.Aspect)
	assert.Equal(t, r.URL, img.Src)

	r.Metadata = map[string]string{types.MetaAlt: "CEO portrait"}
	assert.Equal(t, "CEO portrait", gallery.ToImage(r).Alt)
}

func TestFallback(t *testing.T) {
	for _, name := range gallery.Names() {
		list := gallery.Fallback(name)
		require.NotEmpty(t, list, name)

		for _, img := range list {
			assert.NotEmpty(t, img.Src)
			assert.NotEmpty(t, img.Alt)
		}
	}

	assert.Len(t, gallery.Fallback(gallery.Portraits), 12)
	assert.Len(t, gallery.Fallback(gallery.Featured), 9)
	assert.Len(t, gallery.Fallback(gallery.Portfolio), 28)
	assert.Nil(t, gallery.Fallback("weddings"))

	// 返回副本
	list := gallery.Fallback(gallery.Art)
	list[0].Alt = "mutated"
	assert.NotEqual(t, "mutated", gallery.Fallback(gallery.Art)[0].Alt)
}

func TestLookup(t *testing.T) {
	def, err := gallery.Lookup("featured")
	require.NoError(t, err)
	assert.Equal(t, gallery.SourceTag, def.Source)

	info := def.Info("eva", "eva_featured")
	assert.Equal(t, "eva_featured", info.Tag)
	assert.Empty(t, info.Folder)

	def, err = gallery.Lookup("corporate")
	require.NoError(t, err)
	assert.Equal(t, "eva/corporate", def.Info("eva", "eva_featured").Folder)

	_, err = gallery.Lookup("weddings")
	require.ErrorIs(t, err, gallery.ErrUnknownGallery)
	assert.Len(t, gallery.All(), 5)
}
