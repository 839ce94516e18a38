package rules

import "regexp"

// Correction pairs a known misspelling with its correct form.
type Correction struct {
	Wrong string
	Right string
}

// Misspellings checked by the spelling rule, in reporting order.
// Entries must not be substrings of correctly spelled words.
var Misspellings = []Correction{
	{"recieve", "receive"},
	{"seperate", "separate"},
	{"occured", "occurred"},
	{"definately", "definitely"},
	{"accomodate", "accommodate"},
	{"untill", "until"},
	{"guarentee", "guarantee"},
	{"supplment", "supplement"},
	{"suppliment", "supplement"},
	{"colagen", "collagen"},
	{"nutritian", "nutrition"},
	{"benifit", "benefit"},
	{"wierd", "weird"},
	{"acheive", "achieve"},
	{"recomend", "recommend"},
	{"probiotcs", "probiotics"},
}

// DiseaseClaims are phrases that imply a product treats or prevents disease.
var DiseaseClaims = []string{
	"cures cancer",
	"cure cancer",
	"prevents cancer",
	"treats diabetes",
	"cures diabetes",
	"reverses diabetes",
	"prevents heart disease",
	"cures arthritis",
	"treats arthritis",
	"reverses alzheimer",
	"prevents alzheimer",
	"treats depression",
	"cures depression",
	"lowers blood pressure",
	"cures covid",
}

// DefaultAddressLines are the approved company address fragments; a footer
// must contain at least one of them.
var DefaultAddressLines = []string{
	"PO Box 1208",
	"Boise, ID 83701",
}

// TestimonialTriggers mark content that requires a results disclaimer.
var TestimonialTriggers = []string{
	"testimonial",
	"customer review",
	"verified buyer",
}

// TestimonialDisclaimers are the accepted disclaimer phrases.
var TestimonialDisclaimers = []string{
	"results may vary",
	"results not typical",
}

// Phrase forms used by the capitalization and branding rules.
const (
	ThePath       = "The Path"
	BrandSplit    = "Native Path"
	BrandCombined = "NativePath"
)

var (
	addressPattern   = regexp.MustCompile(`\d+\s+[A-Z]`)
	thePathPattern   = regexp.MustCompile(`(?i)\bthe path\b`)
	breakEvenPattern = regexp.MustCompile(`(?i)\bbreak[\s-]even\b`)
	savingsPattern   = regexp.MustCompile(`(?i)\bsave\s+\d+(?:\.\d+)?\s*%|\bsave\s+\$\d+(?:\.\d{2})?|\$\d+(?:\.\d{2})?\s+off\b|\b\d+\s*%\s+off\b`)
	qualifierPattern = regexp.MustCompile(`(?i)\bup to\b|\bas low as\b|\bselect bundles\b`)
)
