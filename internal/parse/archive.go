package parse

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tleroy/tennis-results/internal/extract"
	"github.com/tleroy/tennis-results/internal/model"
)

// ArchiveParser enumerates the dated editions on a tournament's
// archive page.
type ArchiveParser struct{}

// ArchiveResult accumulates the editions that parsed plus the rows
// skipped because no season year could be extracted.
type ArchiveResult struct {
	Archives []*model.TournamentArchive
	Errors   []*Error
	Skipped  int
}

// Parse reads the archive markup for one tournament. Rows whose year
// cannot be extracted are skipped and counted, never fatal to the
// batch; only unreadable markup fails the whole segment.
func (p *ArchiveParser) Parse(tournament *model.Tournament, markup io.Reader) (ArchiveResult, error) {
	var result ArchiveResult

	doc, err := goquery.NewDocumentFromReader(markup)
	if err != nil {
		return result, fmt.Errorf("parsing archive markup: %w", err)
	}

	section := doc.Find("section#tournament-page-archiv")
	if section.Length() == 0 {
		return result, fmt.Errorf("tournament %s: archive section not found", tournament.Name)
	}

	section.Find("div.archive__row").Each(func(i int, row *goquery.Selection) {
		archive, parseErr := p.parseRow(tournament, row)
		if parseErr != nil {
			result.Errors = append(result.Errors, parseErr)
			result.Skipped++
			return
		}
		result.Archives = append(result.Archives, archive)
	})

	return result, nil
}

func (p *ArchiveParser) parseRow(tournament *model.Tournament, row *goquery.Selection) (*model.TournamentArchive, *Error) {
	link := row.Find("div.archive__season a.archive__text--clickable").First()
	name := strings.TrimSpace(link.Text())
	if name == "" {
		return nil, newError(KindMalformedRow, "archive", tournament.Name, rowSnippet(row))
	}

	year, ok := extract.Year(name)
	if !ok {
		return nil, newError(KindMalformedRow, "archive", tournament.Name, name)
	}

	archive, err := model.NewTournamentArchive(tournament.ID, name, year)
	if err != nil {
		return nil, newError(KindMalformedRow, "archive", tournament.Name, name)
	}

	if href, exists := link.Attr("href"); exists {
		archive.URL = href
		archive.ResultsURL = strings.TrimSuffix(href, "/") + "/results/"
	}
	if winner := strings.TrimSpace(row.Find("div.archive__winner a").First().Text()); winner != "" {
		archive.Winner = winner
	}
	return archive, nil
}

func rowSnippet(row *goquery.Selection) string {
	return strings.Join(strings.Fields(row.Text()), " ")
}
