package arenadl

import "context"

// DefaultPerPage is the number of blocks the API returns per page when the
// request does not ask for a specific page size.
const DefaultPerPage = 50

// Block is one entry in a channel. The set of implementations is closed:
// *ImageBlock is the only downloadable kind, everything else is *OtherBlock.
type Block interface {
	// Class returns the API class name of the block (e.g. "Image", "Text").
	Class() string

	block()
}

// ImageBlock is a block that carries a downloadable image.
type ImageBlock struct {
	ID        int
	Title     string
	SourceURL string // URL of the original image
}

// Class implements Block.
func (b *ImageBlock) Class() string { return "Image" }

func (b *ImageBlock) block() {}

// OtherBlock is any block that has nothing to download, including image
// blocks whose image payload is missing.
type OtherBlock struct {
	ID   int
	Kind string
}

// Class implements Block.
func (b *OtherBlock) Class() string { return b.Kind }

func (b *OtherBlock) block() {}

// ContentPage holds the blocks of a single page of a channel.
// A page with no blocks marks the end of the channel.
type ContentPage struct {
	Number int
	Blocks []Block
}

// Empty reports whether the page has no blocks.
func (p *ContentPage) Empty() bool {
	return p == nil || len(p.Blocks) == 0
}

// ChannelService reads channel contents one page at a time.
type ChannelService interface {
	// FetchPage returns the given 1-based page of the channel's contents.
	// Returns EUNAUTHORIZED if the channel requires a valid access token
	// and ENOTFOUND if the channel does not exist.
	FetchPage(ctx context.Context, channel string, page int) (*ContentPage, error)
}
