package assistant

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/niksmo/shop-assistant/internal/core/domain"
	"github.com/niksmo/shop-assistant/internal/core/port"
)

var _ port.Classifier = (*Classifier)(nil)

var (
	namePhraseRe = regexp.MustCompile(
		`(?i)(?:me llamo|mi nombre es|soy|my name is|i am|i'm)\s+([\p{L}]+(?:\s[\p{L}]+)?)`,
	)
	bareNameRe = regexp.MustCompile(`^[\p{L}]+$`)
)

// An intentRule pairs a named predicate with the intent it selects.
// Rules are evaluated in slice order, first match wins, so the whole
// priority order is a single auditable list.
type intentRule struct {
	name   string
	match  func(text string) bool
	intent domain.Intent
}

// A Classifier maps free prompt text, together with the caller's
// known-name state, onto one classification outcome.
type Classifier struct {
	rules          []intentRule
	defaultProduct string // product id added on a bare affirmation, empty disables
}

func NewClassifier(defaultProductID string) Classifier {
	return Classifier{rules: intentRules(), defaultProduct: defaultProductID}
}

func intentRules() []intentRule {
	anyOf := func(words []string) func(string) bool {
		return func(text string) bool {
			for _, w := range words {
				if strings.Contains(text, w) {
					return true
				}
			}
			return false
		}
	}
	token := func(set map[string]struct{}) func(string) bool {
		return func(text string) bool {
			_, ok := set[strings.TrimRight(text, "!.¡")]
			return ok
		}
	}

	return []intentRule{
		{"greeting", anyOf(greetingWords), domain.IntentGreeting},
		{"thanks", anyOf(thanksWords), domain.IntentThanks},
		{"help", anyOf(helpWords), domain.IntentHelp},
		{"price", anyOf(priceWords), domain.IntentPriceInquiry},
		{"recommendation", anyOf(recommendationWords), domain.IntentRecommendation},
		{"purchase", anyOf(purchaseWords), domain.IntentPurchase},
		{"affirmation", token(affirmationTokens), domain.IntentAffirmation},
		{"negation", token(negationTokens), domain.IntentNegation},
		{
			"general",
			func(text string) bool { return utf8.RuneCountInString(text) >= 5 },
			domain.IntentGeneral,
		},
	}
}

func (c Classifier) Classify(
	text string, p domain.Profile, v domain.Variant,
) domain.Classification {
	lower := strings.ToLower(strings.TrimSpace(text))

	cls := domain.Classification{
		Intent:  c.classifyIntent(lower),
		Name:    extractName(text),
		Product: detectProduct(lower, v),
	}
	cls.Outcome = c.combine(cls, p, v)
	if cls.Outcome == domain.OutcomeDefaultProduct {
		cls.Product, _ = c.defaultMention(v)
	}
	return cls
}

func (c Classifier) classifyIntent(lower string) domain.Intent {
	for _, r := range c.rules {
		if r.match(lower) {
			return r.intent
		}
	}
	return domain.IntentShortResponse
}

// extractName pulls a candidate shopper name out of the text: either an
// explicit "my name is X" phrasing or a single bare alphabetic token of
// plausible name length. Stoplisted tokens are silently dropped.
func extractName(text string) string {
	trimmed := strings.TrimSpace(text)

	var candidate string
	if m := namePhraseRe.FindStringSubmatch(trimmed); m != nil {
		candidate = strings.TrimSpace(m[1])
	} else if n := utf8.RuneCountInString(trimmed); n >= 3 && n <= 16 &&
		bareNameRe.MatchString(trimmed) {
		candidate = trimmed
	}

	if candidate == "" {
		return ""
	}
	if _, stopped := nameStoplist[strings.ToLower(candidate)]; stopped {
		return ""
	}
	return candidate
}

// detectProduct scans for known product keywords. A hit only counts on
// the default storefront, or when the text names the variant itself.
func detectProduct(lower string, v domain.Variant) domain.ProductMention {
	if v != domain.DefaultVariant && !strings.Contains(lower, string(v)) {
		return domain.ProductMention{}
	}

	for _, pk := range productKeywords[v] {
		for _, w := range pk.words {
			if strings.Contains(lower, w) {
				return pk.mention
			}
		}
	}
	return domain.ProductMention{}
}

func (c Classifier) combine(
	cls domain.Classification, p domain.Profile, v domain.Variant,
) domain.Outcome {
	known := p.Known()
	hasProduct := cls.Product.ProductID != ""

	switch {
	case cls.Name != "" && !known:
		return domain.OutcomeNameGiven
	case hasProduct && known &&
		(cls.Intent == domain.IntentPurchase || cls.Intent == domain.IntentAffirmation):
		return domain.OutcomePurchaseConfirm
	case hasProduct && known:
		return domain.OutcomeProductInquiry
	case hasProduct:
		return domain.OutcomeNeedsName
	case cls.Intent == domain.IntentAffirmation && known:
		if _, ok := c.defaultMention(v); ok {
			return domain.OutcomeDefaultProduct
		}
		return domain.OutcomeAmbiguousConfirm
	case !known:
		return domain.OutcomeOnboarding
	default:
		return domain.OutcomeConversational
	}
}

// defaultMention resolves the configured bare-affirmation product for
// the given variant, if any.
func (c Classifier) defaultMention(v domain.Variant) (domain.ProductMention, bool) {
	for _, pk := range productKeywords[v] {
		if pk.mention.ProductID == c.defaultProduct {
			return pk.mention, true
		}
	}
	return domain.ProductMention{}, false
}
