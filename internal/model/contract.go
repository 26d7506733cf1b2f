package model

import "time"

type ContractClause struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Required bool   `json:"required"`
	Order    int    `json:"order"`
}

type ContractTemplate struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Clauses     []ContractClause `json:"clauses"`
	Version     int              `json:"version"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

type ContractTemplateRequest struct {
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Clauses     []ContractClause `json:"clauses,omitempty"`
}
