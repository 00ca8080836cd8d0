package schema

import (
	"regexp"
	"strings"
)

var (
	wikiLinkPattern         = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	structureHeadingPattern = regexp.MustCompile(`(?im)^#{1,3}\s+(Description|Output|Format)\b`)
)

// WikiLink is one [[target]] or [[target|alias]] occurrence. Target and
// alias are raw; normalization happens in the resolver.
type WikiLink struct {
	Target string
	Alias  string
}

// ExtractWikiLinks returns every wiki link in the body, in order.
func ExtractWikiLinks(body string) []WikiLink {
	matches := wikiLinkPattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	links := make([]WikiLink, 0, len(matches))
	for _, match := range matches {
		inner := match[1]
		target := inner
		alias := ""
		if idx := strings.IndexByte(inner, '|'); idx != -1 {
			target = inner[:idx]
			alias = inner[idx+1:]
		}
		links = append(links, WikiLink{Target: target, Alias: alias})
	}
	return links
}

// HasStructureHeading reports whether the body contains a level 1-3
// heading named Description, Output, or Format.
func HasStructureHeading(body string) bool {
	return structureHeadingPattern.MatchString(body)
}
