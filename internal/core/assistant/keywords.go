package assistant

import "github.com/niksmo/shop-assistant/internal/core/domain"

// Stoplist of tokens never accepted as a shopper name: common words,
// product terms and tech names, in both prompt languages.
var nameStoplist = map[string]struct{}{
	"hola": {}, "hello": {}, "gracias": {}, "thanks": {},
	"bien": {}, "good": {}, "mal": {}, "bad": {},
	"si": {}, "sí": {}, "no": {}, "yes": {}, "usuario": {},
	"ayuda": {}, "help": {}, "producto": {}, "productos": {},
	"comprar": {}, "precio": {}, "caro": {}, "barato": {},
	"camiseta": {}, "sudadera": {}, "sticker": {}, "stickers": {},
	"angular": {}, "react": {},
}

var (
	greetingWords = []string{
		"hola", "hello", "hi ", "hey", "buenos días", "buenas tardes",
		"buenas noches",
	}
	thanksWords = []string{"gracias", "thanks", "thank you"}
	helpWords   = []string{"ayuda", "help", "qué puedes hacer", "what can you do"}
	priceWords  = []string{
		"precio", "cuánto cuesta", "cuanto cuesta", "how much", "cost",
		"barato", "caro",
	}
	recommendationWords = []string{
		"recomiend", "recommend", "suggest", "sugier", "sugerencia",
	}
	purchaseWords = []string{
		"quiero", "comprar", "compra", "agregar", "añadir",
		"want", "buy", "add", "purchase",
	}
)

var (
	affirmationTokens = map[string]struct{}{
		"si": {}, "sí": {}, "yes": {}, "ok": {}, "okay": {},
		"vale": {}, "sure": {}, "claro": {}, "dale": {},
	}
	negationTokens = map[string]struct{}{
		"no": {}, "nope": {}, "nada": {}, "not": {},
	}
)

// Per-variant product keyword tables. A keyword hit resolves to the
// mention with its fixed canned description.
var productKeywords = map[domain.Variant][]productKeyword{
	domain.VariantAngular: {
		{
			words: []string{"t-shirt", "tshirt", "camiseta", "shirt"},
			mention: domain.ProductMention{
				ProductID:   "6631",
				ProductName: "Angular T-shirt",
				Description: "High-quality Angular branded t-shirt for developers ($25, $19 con descuento)",
			},
		},
		{
			words: []string{"sweatshirt", "sudadera"},
			mention: domain.ProductMention{
				ProductID:   "2372",
				ProductName: "Angular Sweatshirt",
				Description: "Comfortable Angular sweatshirt for coding sessions ($39)",
			},
		},
		{
			words: []string{"sticker"},
			mention: domain.ProductMention{
				ProductID:   "3936",
				ProductName: "Angular Stickers",
				Description: "Angular stickers pack for your laptop ($5.99)",
			},
		},
		{
			words: []string{"mug", "taza"},
			mention: domain.ProductMention{
				ProductID:   "1002",
				ProductName: "Angular Mug",
				Description: "Start your day with this Angular mug ($9)",
			},
		},
		{
			words: []string{"pixel", "phone", "teléfono"},
			mention: domain.ProductMention{
				ProductID:   "5551",
				ProductName: "Pixel 8 Pro",
				Description: "Latest Google Pixel phone ($999)",
			},
		},
		{
			words: []string{"gift card", "tarjeta", "regalo"},
			mention: domain.ProductMention{
				ProductID:   "8013",
				ProductName: "Google Play $25 Gift Card",
				Description: "Google Play gift card for apps and games ($25)",
			},
		},
	},
	domain.VariantReact: {
		{
			words: []string{"t-shirt", "tshirt", "camiseta", "shirt"},
			mention: domain.ProductMention{
				ProductID:   "react-001",
				ProductName: "React T-shirt",
				Description: "Comfortable React branded t-shirt ($25, $19 con descuento)",
			},
		},
		{
			words: []string{"sweatshirt", "sudadera"},
			mention: domain.ProductMention{
				ProductID:   "react-002",
				ProductName: "React Sweatshirt",
				Description: "Warm React sweatshirt ($39)",
			},
		},
		{
			words: []string{"sticker"},
			mention: domain.ProductMention{
				ProductID:   "react-003",
				ProductName: "React Stickers",
				Description: "React stickers for developers ($5.99)",
			},
		},
		{
			words: []string{"mug", "taza"},
			mention: domain.ProductMention{
				ProductID:   "react-004",
				ProductName: "React Mug",
				Description: "Coffee mug with React logo ($9)",
			},
		},
		{
			words: []string{"book", "libro", "hooks"},
			mention: domain.ProductMention{
				ProductID:   "react-005",
				ProductName: "React Hooks Book",
				Description: "Complete guide to React Hooks and modern React patterns ($49.99)",
			},
		},
		{
			words: []string{"gift card", "tarjeta", "regalo"},
			mention: domain.ProductMention{
				ProductID:   "react-gift-25",
				ProductName: "React Store $25 Gift Card",
				Description: "Gift card for React merchandise and courses ($25)",
			},
		},
	},
}

type productKeyword struct {
	words   []string
	mention domain.ProductMention
}
