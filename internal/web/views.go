package web

import (
	"html/template"
	"math"
	"time"

	"github.com/sarkaridekho/examinfo/internal/models"
)

// newWindow is how long a post keeps its NEW badge after an update.
const newWindowDays = 7

// CategoryInfo is the per-category page chrome: display labels and icon.
type CategoryInfo struct {
	Slug  string
	Label string
	Hindi string
	Icon  string
}

var categoryInfo = map[models.Category]CategoryInfo{
	models.CategoryResult:     {Slug: "result", Label: "Sarkari Results", Hindi: "सरकारी रिजल्ट", Icon: "🏆"},
	models.CategoryAdmitCard:  {Slug: "admit-card", Label: "Admit Cards", Hindi: "एडमिट कार्ड", Icon: "🎫"},
	models.CategoryLatestJobs: {Slug: "latest-jobs", Label: "Latest Jobs", Hindi: "नई सरकारी नौकरी", Icon: "💼"},
	models.CategoryAnswerKey:  {Slug: "answer-key", Label: "Answer Keys", Hindi: "आंसर की", Icon: "🔑"},
	models.CategorySyllabus:   {Slug: "syllabus", Label: "Syllabus", Hindi: "सिलेबस", Icon: "📚"},
	models.CategoryAdmission:  {Slug: "admission", Label: "Admission", Hindi: "एडमिशन", Icon: "🎓"},
}

// CategoryLookup returns the chrome for a category slug, reporting whether
// the slug is one of the six known categories.
func CategoryLookup(slug string) (CategoryInfo, bool) {
	category, ok := models.ParseCategory(slug)
	if !ok {
		return CategoryInfo{}, false
	}
	return categoryInfo[category], true
}

// IsNew reports whether a post updated at updatedAt still carries the NEW
// badge at now. The elapsed-day count is a ceiling, so the badge holds
// through the seventh day inclusive.
func IsNew(updatedAt, now time.Time) bool {
	elapsed := now.Sub(updatedAt)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	days := math.Ceil(elapsed.Hours() / 24)
	return days <= newWindowDays
}

// PostCard is the listing-grid projection of a post, decoupled from the
// persisted entity.
type PostCard struct {
	Title           string
	Slug            string
	FeatureImage    string
	CategorySlug    string
	CategoryLabel   string
	MetaDescription string
	UpdatedDisplay  string
	IsNew           bool
}

func newPostCard(post *models.Post, now time.Time) PostCard {
	info := categoryInfo[post.Category]
	return PostCard{
		Title:           post.Title,
		Slug:            post.Slug,
		FeatureImage:    post.FeatureImage,
		CategorySlug:    info.Slug,
		CategoryLabel:   info.Label,
		MetaDescription: post.MetaDescription,
		UpdatedDisplay:  post.UpdatedAt.Format("02/01/2006"),
		IsNew:           IsNew(post.UpdatedAt, now),
	}
}

func newPostCards(posts []*models.Post, now time.Time) []PostCard {
	cards := make([]PostCard, 0, len(posts))
	for _, post := range posts {
		cards = append(cards, newPostCard(post, now))
	}
	return cards
}

// homeView feeds the homepage template: a ticker line, three primary card
// sections and three dense resource columns.
type homeView struct {
	TickerJob    string
	TickerResult string
	TickerAdmit  string
	Jobs         []PostCard
	Results      []PostCard
	AdmitCards   []PostCard
	AnswerKeys   []PostCard
	Syllabus     []PostCard
	Admission    []PostCard
}

// categoryView feeds a category listing page.
type categoryView struct {
	Info  CategoryInfo
	Posts []PostCard
}

// postView feeds the post detail page. ContentHTML has already been through
// the sanitizer; nothing else on the page injects raw markup.
type postView struct {
	Title           string
	MetaDescription string
	Tags            []string
	CategorySlug    string
	CategoryLabel   string
	FeatureImage    string
	UpdatedDisplay  string
	ContentHTML     template.HTML
	JSONLD          template.JS
	Related         []PostCard
}

// searchView feeds the search results page.
type searchView struct {
	Query   string
	Count   int
	Results []PostCard
}
