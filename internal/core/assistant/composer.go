package assistant

import (
	"math/rand/v2"
	"strings"

	"github.com/niksmo/shop-assistant/internal/core/domain"
	"github.com/niksmo/shop-assistant/internal/core/port"
)

var _ port.Composer = (*Composer)(nil)

// Template sets per outcome. Placeholders: {name}, {product},
// {description}, {variant}. Sets with more than one entry are picked
// from uniformly at random.
var templates = map[domain.Outcome][]string{
	domain.OutcomeNameGiven: {
		"¡Encantado de conocerte, {name}! 🎉 Ahora que nos conocemos, puedo ayudarte mejor. Tenemos una increíble selección de productos {variant}: camisetas, sudaderas, stickers, tecnología y tarjetas de regalo. ¿Qué te interesa?",
		"¡Mucho gusto, {name}! Ya podemos empezar. Tenemos camisetas, sudaderas, stickers, tecnología y tarjetas de regalo {variant}. ¿Por dónde quieres empezar?",
	},
	domain.OutcomePurchaseConfirm: {
		"¡Perfecto, {name}! Agregando 1 x {product} al carrito. ¿Algo más?",
		"¡Excelente elección, {name}! Agrego 1 x {product} a tu carrito.",
	},
	domain.OutcomeProductInquiry: {
		"¡Claro, {name}! {description}. ¿Quieres que lo agregue al carrito?",
		"Buena elección, {name}: {description}. ¿Te lo agrego al carrito?",
	},
	domain.OutcomeNeedsName: {
		"¡Me encanta que estés interesado en {product}! Pero antes de ayudarte, **¿podrías decirme tu nombre?** Así puedo personalizar mis recomendaciones. 😊",
	},
	domain.OutcomeAmbiguousConfirm: {
		"¡Genial, {name}! ¿Qué producto te gustaría agregar al carrito? Tenemos camisetas, sudaderas, stickers, tecnología y tarjetas de regalo.",
	},
	domain.OutcomeDefaultProduct: {
		"¡Perfecto, {name}! Agregando 1 x {product} al carrito.",
	},
	domain.OutcomeOnboarding: {
		"¡Hola! 👋 Bienvenido a nuestra tienda {variant}. Soy tu asistente personal de compras. **¿Cómo te llamas?** Me gustaría personalizar tu experiencia.",
		"¡Bienvenido a nuestra tienda {variant}! Para brindarte una mejor experiencia, ¿podrías decirme tu nombre?",
	},
}

// Per-intent conversational replies for shoppers we already know.
var conversationalTemplates = map[domain.Intent][]string{
	domain.IntentGreeting: {
		"¡Hola de nuevo, {name}! 👋 Me alegra verte. ¿En qué puedo ayudarte hoy?",
		"¡Hola, {name}! ¿Buscas algo en especial de nuestra tienda {variant}?",
	},
	domain.IntentThanks: {
		"¡De nada, {name}! Aquí estoy si necesitas algo más. 😊",
		"¡Un placer ayudarte, {name}!",
	},
	domain.IntentHelp: {
		"Claro, {name}. Puedo mostrarte productos, decirte precios y agregar artículos a tu carrito. ¿Qué necesitas?",
	},
	domain.IntentPriceInquiry: {
		"Tenemos productos {variant} desde $5.99 hasta $999, {name}. ¿Sobre cuál quieres saber el precio?",
	},
	domain.IntentRecommendation: {
		"Te recomiendo empezar por nuestras camisetas y sudaderas {variant}, {name}. ¡Son las favoritas! ¿Quieres ver alguna?",
	},
	domain.IntentPurchase: {
		"¡Excelente, {name}! ¿Qué producto específico te gustaría agregar al carrito?",
	},
	domain.IntentNegation: {
		"Está bien, {name}. Si cambias de opinión, aquí estaré. 😊",
	},
	domain.IntentGeneral: {
		"Entiendo, {name}. Como tu asistente personal de compras {variant}, estoy aquí para ayudarte. ¿Te gustaría ver nuestras recomendaciones o buscas algo específico?",
	},
	domain.IntentShortResponse: {
		"¿Puedes contarme un poco más, {name}? Así te ayudo mejor.",
	},
}

// A Composer maps a classification outcome onto a canned reply and,
// for purchase outcomes, the addToCart action payload.
type Composer struct {
	pick func(n int) int
}

func NewComposer() Composer {
	return Composer{pick: rand.IntN}
}

func (c Composer) Compose(
	cls domain.Classification, p domain.Profile, v domain.Variant,
) domain.Reply {
	set := templates[cls.Outcome]
	if cls.Outcome == domain.OutcomeConversational {
		set = conversationalTemplates[cls.Intent]
	}
	if len(set) == 0 {
		set = conversationalTemplates[domain.IntentGeneral]
	}

	msg := set[c.pick(len(set))]
	reply := domain.Reply{
		Message:  c.substitute(msg, cls, p, v),
		UserName: cls.Name,
	}

	switch cls.Outcome {
	case domain.OutcomePurchaseConfirm, domain.OutcomeDefaultProduct:
		reply.Action = &domain.Action{
			Type: domain.ActionAddToCart,
			Params: domain.ActionParams{
				ProductID:   cls.Product.ProductID,
				ProductName: cls.Product.ProductName,
				Quantity:    1,
			},
		}
	}
	return reply
}

func (c Composer) substitute(
	msg string, cls domain.Classification, p domain.Profile, v domain.Variant,
) string {
	name := cls.Name
	if name == "" {
		name = p.Name
	}

	r := strings.NewReplacer(
		"{name}", name,
		"{product}", cls.Product.ProductName,
		"{description}", cls.Product.Description,
		"{variant}", string(v),
	)
	return r.Replace(msg)
}
