package css

// userAgentCSS gives markup documents a usable default: structural elements
// are blocks and metadata is suppressed. Everything else stays inline.
const userAgentCSS = `
html, body, div, p, h1, h2, h3, h4, h5, h6, ul, ol, li, section, article,
header, footer, nav, main, aside, blockquote, pre, form, table, dl, dt, dd,
figure, figcaption, address, hr { display: block; }
head, style, script, title, meta, link, template { display: none; }
`

// UserAgentStylesheet returns the default stylesheet. Prepend it with Merge
// so author rules of equal specificity win by source order.
func UserAgentStylesheet() *Stylesheet {
	sheet, _ := ParseStylesheet(userAgentCSS)
	return sheet
}
