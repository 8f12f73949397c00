package medline

import (
	"strings"

	"golang.org/x/net/html"
)

// sectionKeywords flag a heading as introducing food or diet guidance.
var sectionKeywords = []string{
	"food", "diet", "grapefruit", "alcohol", "meals",
	"eating", "nutrition", "supplements", "vitamins", "minerals",
}

// paragraphKeywords flag individual paragraphs when no heading matched.
var paragraphKeywords = []string{
	"food", "grapefruit", "drink", "eat", "meal", "cheese", "tyramine",
	"alcohol", "diet", "nutrition", "supplement", "vitamin", "mineral",
	"herb", "spice", "juice",
}

// skippedElements never contribute text. Navigation chrome is excluded so
// menu entries like "Drugs & Supplements" do not trip the keyword scan.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"svg":      true,
	"nav":      true,
	"footer":   true,
	"header":   true,
}

var headingElements = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// extractFoodSections walks the parsed page and returns the text of every
// section whose heading mentions food or diet. When no heading matches it
// falls back to scanning individual paragraphs and list items.
func extractFoodSections(doc *html.Node) []string {
	var headings []*html.Node
	collectElements(doc, headingElements, &headings)

	var sections []string
	for _, heading := range headings {
		if !containsAny(strings.ToLower(elementText(heading)), sectionKeywords) {
			continue
		}
		if text := sectionContent(heading); text != "" {
			sections = append(sections, text)
		}
	}
	if len(sections) > 0 {
		return sections
	}

	var paragraphs []*html.Node
	collectElements(doc, map[string]bool{"p": true, "li": true}, &paragraphs)
	for _, paragraph := range paragraphs {
		text := elementText(paragraph)
		if text == "" {
			continue
		}
		if containsAny(strings.ToLower(text), paragraphKeywords) {
			sections = append(sections, text)
		}
	}
	return sections
}

// sectionContent joins a heading's text with the content following it up to
// the next heading. Monograph pages wrap each heading in its own container,
// so when the heading has no useful siblings the walk climbs to the wrapper
// and continues from there.
func sectionContent(heading *html.Node) string {
	parts := []string{}
	if text := elementText(heading); text != "" {
		parts = append(parts, text)
	}

	node := heading
	for level := 0; level < 3; level++ {
		if appendSiblingContent(node, &parts) || node.Parent == nil {
			break
		}
		node = node.Parent
	}
	return strings.Join(parts, " ")
}

func appendSiblingContent(start *html.Node, parts *[]string) bool {
	found := false
	for sib := start.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type != html.ElementNode {
			continue
		}
		if containsHeading(sib, 0) {
			break
		}
		switch sib.Data {
		case "p", "li", "ul", "ol", "div", "section":
			if text := elementText(sib); text != "" {
				*parts = append(*parts, text)
				found = true
			}
		}
	}
	return found
}

// filterByFood keeps only the sections mentioning one of the food terms.
// The unfiltered set is returned when nothing matches so generic diet
// guidance still surfaces.
func filterByFood(sections []string, terms []string) []string {
	var wanted []string
	for _, term := range terms {
		if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
			wanted = append(wanted, term)
		}
	}
	if len(wanted) == 0 {
		return sections
	}

	var matched []string
	for _, section := range sections {
		if containsAny(strings.ToLower(section), wanted) {
			matched = append(matched, section)
		}
	}
	if len(matched) == 0 {
		return sections
	}
	return matched
}

func collectElements(n *html.Node, tags map[string]bool, out *[]*html.Node) {
	if n.Type == html.ElementNode {
		if skippedElements[n.Data] {
			return
		}
		if tags[n.Data] {
			*out = append(*out, n)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectElements(child, tags, out)
	}
}

func containsHeading(n *html.Node, depth int) bool {
	if depth > 50 {
		return false
	}
	if n.Type == html.ElementNode && headingElements[n.Data] {
		return true
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if containsHeading(child, depth+1) {
			return true
		}
	}
	return false
}

// elementText flattens an element's text nodes into a single spaced string.
func elementText(n *html.Node) string {
	var sb strings.Builder
	appendText(n, &sb, 0)
	return strings.TrimSpace(sb.String())
}

func appendText(n *html.Node, sb *strings.Builder, depth int) {
	if depth > 50 {
		return
	}
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			sb.WriteString(text)
			sb.WriteString(" ")
		}
		return
	}
	if n.Type == html.ElementNode && skippedElements[n.Data] {
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		appendText(child, sb, depth+1)
	}
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
