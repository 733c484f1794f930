package gallery

import "github.com/yeisme/folio/pkg/internal/types"

func img(src, alt string, aspect types.Aspect) types.GalleryImage {
	return types.GalleryImage{Src: src, Alt: alt, Aspect: aspect}
}

var portraitsFallback = []types.GalleryImage{
	img("https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=900&q=80", "Male executive portrait, studio, Tokyo", types.AspectPortrait),
	img("https://images.unsplash.com/photo-1573496359142-b8d87734a5a2?w=900&q=80", "Professional woman headshot, neutral background", types.AspectPortrait),
	img("https://images.unsplash.com/photo-1560250097-0b93528c311a?w=900&q=80", "Executive portrait in office corridor", types.AspectPortrait),
	img("https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?w=900&q=80", "Close-up portrait, editorial style", types.AspectPortrait),
	img("https://images.unsplash.com/photo-1534751516642-a1af1ef26a56?w=900&q=80", "Creative portrait, art director", types.AspectPortrait),
	img("https://images.unsplash.com/photo-1594824476967-48c8b964273f?w=900&q=80", "Professional headshot, contemporary style", types.AspectPortrait),
	img("https://images.unsplash.com/photo-1551836022-4c4c79ecde51?w=900&q=80", "Consultant portrait, window light", types.AspectPortrait),
	img("https://images.unsplash.com/photo-1519085360753-af0119f7cbe7?w=900&q=80", "Outdoor executive portrait, urban Tokyo", types.AspectPortrait),
	img("https://images.unsplash.com/photo-1580489944761-15a19d654956?w=900&q=80", "Brand portrait for media kit", types.AspectPortrait),
	img("https://images.unsplash.com/photo-1552374196-c4e7ffc6e126?w=900&q=80", "Founder portrait, co-working space", types.AspectPortrait),
	img("https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=900&q=80", "Creative editorial portrait", types.AspectPortrait),
	img("https://images.unsplash.com/photo-1545167622-3a6ac756afa4?w=900&q=80", "Team portrait session, corporate branding", types.AspectLandscape),
}

var corporateFallback = []types.GalleryImage{
	img("https://images.unsplash.com/photo-1540575467063-178a50c2df87?w=1200&q=80", "Keynote speaker on stage, Tokyo conference", types.AspectLandscape),
	img("https://images.unsplash.com/photo-1475721027785-f74eccf877e2?w=1200&q=80", "Business conference hall, audience", types.AspectLandscape),
	img("https://images.unsplash.com/photo-1511578314322-379afb476865?w=1200&q=80", "Networking event, evening reception", types.AspectLandscape),
	img("https://images.unsplash.com/photo-1517048676732-d65bc937f952?w=1200&q=80", "Executive team meeting, board table", types.AspectLandscape),
	img("https://images.unsplash.com/photo-1591115765373-5207764f72e7?w=1200&q=80", "Panel discussion, industry forum", types.AspectLandscape),
	img("https://images.unsplash.com/photo-1528605248644-14dd04022da1?w=1200&q=80", "Team workshop session, internal event", types.AspectLandscape),
	img("https://images.unsplash.com/photo-1543269664-56d93c1b41a6?w=1200&q=80", "Product launch event, press moment", types.AspectLandscape),
	img("https://images.unsplash.com/photo-1556761175-b413da4baf72?w=1200&q=80", "Corporate team portrait at event", types.AspectLandscape),
	img("https://images.unsplash.com/photo-1453738773917-9c3eff1db985?w=1200&q=80", "Speaker preparation backstage", types.AspectPortrait),
	img("https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=1200&q=80", "Event detail - badge and materials", types.AspectSquare),
}

var artFallback = []types.GalleryImage{
	img("https://images.unsplash.com/photo-1578926288207-a90a5366759d?w=1200&q=80", "Gallery visitors at vernissage opening, Tokyo", types.AspectLandscape),
	img("https://images.unsplash.com/photo-1518998053901-5348d3961a04?w=1200&q=80", "Contemporary art gallery interior", types.AspectLandscape),
	img("https://images.unsplash.com/photo-1547826039-bfc35e0f1ea8?w=1200&q=80", "Museum exhibition hall, installation view", types.AspectLandscape),
	img("https://images.unsplash.com/photo-1605721911519-3dfeb3be25e7?w=1200&q=80", "Artwork documentation - large-format painting", types.AspectLandscape),
	img("https://images.unsplash.com/photo-1579762715118-a6f1d4b934f1?w=1200&q=80", "Sculpture documentation in white gallery space", types.AspectPortrait),
	img("https://images.unsplash.com/photo-1501084817091-a4f3d1d19e07?w=1200&q=80", "Artist curator portrait in studio", types.AspectPortrait),
	img("https://images.unsplash.com/photo-1513364776144-60967b0f800f?w=1200&q=80", "Vernissage crowd, gallery opening night Melbourne", types.AspectLandscape),
	img("https://images.unsplash.com/photo-1561214115-f2f134cc4912?w=1200&q=80", "Artist at work - portrait in print studio", types.AspectPortrait),
	img("https://images.unsplash.com/photo-1558618048-fbd3e5bd9cff?w=1200&q=80", "Abstract artwork documentation detail", types.AspectSquare),
	img("https://images.unsplash.com/photo-1583425423988-dcd5f8d0f8a4?w=1200&q=80", "Artist talk, audience at gallery event", types.AspectLandscape),
	img("https://images.unsplash.com/photo-1526779259212-939e64788e3c?w=1200&q=80", "Curator portrait against gallery wall", types.AspectPortrait),
	img("https://images.unsplash.com/photo-1547637589-f54c34f5d7a4?w=1200&q=80", "Performance art documentation", types.AspectLandscape),
}

var featuredFallback = []types.GalleryImage{
	portraitsFallback[0],
	corporateFallback[0],
	artFallback[0],
	portraitsFallback[3],
	corporateFallback[3],
	artFallback[5],
	portraitsFallback[7],
	artFallback[6],
	corporateFallback[8],
}

var portfolioFallback = []types.GalleryImage{
	portraitsFallback[0],
	corporateFallback[0],
	artFallback[0],
	portraitsFallback[2],
	artFallback[4],
	corporateFallback[2],
	portraitsFallback[5],
	artFallback[7],
	corporateFallback[4],
	portraitsFallback[1],
	artFallback[6],
	corporateFallback[7],
	portraitsFallback[8],
	artFallback[3],
	corporateFallback[9],
	portraitsFallback[6],
	artFallback[10],
	corporateFallback[5],
	portraitsFallback[10],
	artFallback[9],
	corporateFallback[8],
	artFallback[8],
	portraitsFallback[11],
	artFallback[11],
	portraitsFallback[4],
	corporateFallback[1],
	artFallback[2],
	portraitsFallback[9],
}

// Fallback 返回图集的静态兜底列表副本，未知图集返回 nil.
func Fallback(name Name) []types.GalleryImage {
	var src []types.GalleryImage

	switch name {
	case Portraits:
		src = portraitsFallback
	case Corporate:
		src = corporateFallback
	case Art:
		src = artFallback
	case Featured:
		src = featuredFallback
	case Portfolio:
		src = portfolioFallback
	default:
		return nil
	}

	out := make([]types.GalleryImage, len(src))
	copy(out, src)

	return out
}
