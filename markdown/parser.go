package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var directivePrefix = []byte("!civet:")

// directiveParser recognizes `!civet:<sub> [settings]` directives. The
// directive occupies the remainder of its line.
type directiveParser struct {
	ext *Extension
}

func (p *directiveParser) Trigger() []byte {
	return []byte{'!'}
}

func (p *directiveParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, directivePrefix) {
		return nil
	}

	rest := line[len(directivePrefix):]
	consumed := len(line)
	if n := len(rest); n > 0 && rest[n-1] == '\n' {
		rest = rest[:n-1]
		consumed--
	}
	rest = bytes.TrimRight(rest, "\r")

	sub := string(rest)
	var rawSettings string
	if idx := bytes.IndexByte(rest, ' '); idx >= 0 {
		sub = string(rest[:idx])
		rawSettings = string(rest[idx+1:])
	}

	var node ast.Node
	settings := parseSettings(rawSettings)
	switch sub {
	case "results":
		node = p.results(settings)
	case "mergeresults":
		node = p.mergeResults(settings)
	case "badges":
		node = p.badges(settings)
	case "report":
		node = p.report(settings)
	default:
		p.ext.log.Warn("unknown civet directive", "subcommand", sub)
		return nil
	}

	block.Advance(consumed)
	return node
}

func (p *directiveParser) results(settings map[string]string) ast.Node {
	url, repo := p.ext.civetInfo(settings)

	var sha string
	if p.ext.git != nil {
		s, err := p.ext.git.HeadSHA()
		if err != nil {
			p.ext.log.Warn("failed to resolve HEAD for results link", "err", err)
		} else {
			sha = s
		}
	}

	link := &ResultsLink{SHA: sha}
	if url != "" && repo != "" && sha != "" {
		link.URL = shaEventsURL(url, repo, sha)
	}
	return link
}

func (p *directiveParser) mergeResults(settings map[string]string) ast.Node {
	url, repo := p.ext.civetInfo(settings)

	node := &MergeResults{}
	if p.ext.git == nil {
		return node
	}

	shas, err := p.ext.git.MergeSHAs(p.ext.branch, p.ext.author, p.ext.mergeLimit)
	if err != nil {
		p.ext.log.Warn("failed to list merge commits", "branch", p.ext.branch, "author", p.ext.author, "err", err)
		return node
	}

	for _, sha := range shas {
		link := ShaLink{SHA: sha}
		if url != "" && repo != "" {
			link.URL = shaEventsURL(url, repo, sha)
		}
		node.Links = append(node.Links, link)
	}
	return node
}

func (p *directiveParser) badges(settings map[string]string) ast.Node {
	return &BadgeGroup{
		Prefix: settings["prefix"],
		Tests:  strings.Fields(settings["tests"]),
	}
}

func (p *directiveParser) report(settings map[string]string) ast.Node {
	return &ReportTable{
		Prefix: settings["prefix"],
		Tests:  strings.Fields(settings["tests"]),
	}
}

func shaEventsURL(site, repo, sha string) string {
	return fmt.Sprintf("%s/sha_events/%s/%s", site, repo, sha)
}
