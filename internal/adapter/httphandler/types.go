package httphandler

import "github.com/niksmo/shop-assistant/internal/core/domain"

type (
	Product struct {
		ID            string      `json:"id"`
		Name          string      `json:"name"`
		Description   string      `json:"description"`
		CategoryIDs   []string    `json:"category_ids"`
		Images        []string    `json:"images"`
		Price         float64     `json:"price"`
		DiscountPrice float64     `json:"discount_price"`
		Availability  string      `json:"availability"`
		Parameters    []Parameter `json:"parameters,omitempty"`
		CreatedAt     string      `json:"created_at"`
	}

	Parameter struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}

	Category struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Order int    `json:"order"`
	}
)

type (
	PromptResponse struct {
		Message  string  `json:"message"`
		Action   *Action `json:"action,omitempty"`
		Error    string  `json:"error,omitempty"`
		UserName string  `json:"userName,omitempty"`
	}

	Action struct {
		Type   string       `json:"type"`
		Params ActionParams `json:"params"`
	}

	ActionParams struct {
		ProductID   string `json:"productId"`
		ProductName string `json:"productName"`
		Quantity    int    `json:"quantity"`
	}
)

type (
	UserResponse struct {
		Name              string `json:"name"`
		Email             string `json:"email"`
		IsNewUser         bool   `json:"isNewUser"`
		ConversationCount int    `json:"conversationCount"`
	}

	NameRequest struct {
		Name string `json:"name"`
	}

	NameResponse struct {
		Message   string `json:"message"`
		Name      string `json:"name"`
		IsNewUser bool   `json:"isNewUser"`
	}

	ResetResponse struct {
		Success     bool         `json:"success"`
		Message     string       `json:"message"`
		UserProfile UserResponse `json:"userProfile"`
		Timestamp   string       `json:"timestamp"`
	}
)

type ErrorResponse struct {
	Error    string   `json:"error"`
	Message  string   `json:"message,omitempty"`
	Required []string `json:"required,omitempty"`
}

func toProduct(p domain.Product) Product {
	out := Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		CategoryIDs:   p.CategoryIDs,
		Images:        p.Images,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		Availability:  string(p.Availability),
		CreatedAt:     p.CreatedAt,
	}
	for _, param := range p.Parameters {
		out.Parameters = append(out.Parameters, Parameter(param))
	}
	return out
}

func toProducts(ps []domain.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProduct(p))
	}
	return out
}

func toCategories(cs []domain.Category) []Category {
	out := make([]Category, 0, len(cs))
	for _, c := range cs {
		out = append(out, Category(c))
	}
	return out
}

func toPromptResponse(r domain.Reply) PromptResponse {
	out := PromptResponse{Message: r.Message, UserName: r.UserName}
	if r.Action != nil {
		out.Action = &Action{
			Type:   r.Action.Type,
			Params: ActionParams(r.Action.Params),
		}
	}
	return out
}
