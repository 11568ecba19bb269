package domain

import "time"

// A Profile is the per-session conversational state of a shopper.
type Profile struct {
	Name              string
	IsNewUser         bool
	ConversationCount int
}

func NewProfile() Profile {
	return Profile{IsNewUser: true}
}

// Known reports whether the shopper already introduced themselves.
func (p Profile) Known() bool {
	return p.Name != ""
}

// An Intent is the classified purpose of a single chat message.
type Intent string

const (
	IntentGreeting       Intent = "greeting"
	IntentThanks         Intent = "thanks"
	IntentHelp           Intent = "help"
	IntentPriceInquiry   Intent = "price_inquiry"
	IntentRecommendation Intent = "recommendation"
	IntentPurchase       Intent = "purchase"
	IntentAffirmation    Intent = "affirmation"
	IntentNegation       Intent = "negation"
	IntentGeneral        Intent = "general"
	IntentShortResponse  Intent = "short_response"
)

// An Outcome combines the intent with the name/product extraction and the
// caller's known-name state into the branch the composer answers from.
type Outcome string

const (
	OutcomeNameGiven        Outcome = "name_given"
	OutcomePurchaseConfirm  Outcome = "purchase_confirm"
	OutcomeProductInquiry   Outcome = "product_inquiry"
	OutcomeNeedsName        Outcome = "needs_name"
	OutcomeAmbiguousConfirm Outcome = "ambiguous_confirm"
	OutcomeDefaultProduct   Outcome = "default_product"
	OutcomeOnboarding       Outcome = "onboarding"
	OutcomeConversational   Outcome = "conversational"
)

// A ProductMention is a catalog reference recognized inside free text,
// with its fixed canned description.
type ProductMention struct {
	ProductID   string
	ProductName string
	Description string
}

type Classification struct {
	Intent  Intent
	Outcome Outcome
	Name    string         // extracted candidate name, empty if none
	Product ProductMention // zero ProductID means no product matched
}

const ActionAddToCart = "addToCart"

type (
	// An Action is a structured instruction returned alongside a chat
	// message for the client to execute.
	Action struct {
		Type   string
		Params ActionParams
	}

	ActionParams struct {
		ProductID   string
		ProductName string
		Quantity    int
	}
)

// A Reply is the assistant's answer to one prompt.
type Reply struct {
	Message  string
	Action   *Action
	UserName string // set when a name was extracted from the prompt
}

// A ChatEvent is the analytics record emitted per processed prompt.
type ChatEvent struct {
	EventID   string
	Session   string
	Variant   Variant
	Prompt    string
	Intent    Intent
	Outcome   Outcome
	ProductID string
	CreatedAt time.Time
}

// A CartLine is a client-held cart entry for one product.
type CartLine struct {
	ProductID string
	Quantity  int
}

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// A ChatMessage is one transient turn of the client transcript.
type ChatMessage struct {
	Text string
	By   Sender
}
