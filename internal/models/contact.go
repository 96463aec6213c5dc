package models

import (
	"encoding/json"
	"time"

	"github.com/ignatzorin/agency-site/internal/domain/valueobject"
)

// ModerationResult: вердикт модерации, который считает внешний API.
type ModerationResult struct {
	IsAppropriate bool     `json:"isAppropriate"`
	ToxicityScore *float64 `json:"toxicityScore,omitempty"`
}

// Contact: сообщение из формы обратной связи.
type Contact struct {
	ID               string                    `json:"id"`
	Name             string                    `json:"name"`
	Email            string                    `json:"email"`
	Subject          string                    `json:"subject"`
	Message          string                    `json:"message"`
	Status           valueobject.ContactStatus `json:"status"`
	CreatedAt        time.Time                 `json:"createdAt"`
	ModerationResult *ModerationResult         `json:"moderationResult,omitempty"`
}

func (c *Contact) StatusValue() string                { return string(c.Status) }
func (c *Contact) StatusVariant() valueobject.Variant { return c.Status.Variant() }
func (c *Contact) SearchFields() []string             { return []string{c.Name, c.Email, c.Subject} }
func (c *Contact) CategoryValue() string              { return "" }
func (c *Contact) Timestamp() time.Time               { return c.CreatedAt }

func (c *Contact) UnmarshalJSON(data []byte) error {
	type alias Contact
	aux := struct {
		MongoID string `json:"_id"`
		*alias
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = aux.MongoID
	}
	return nil
}

func (c Contact) MarshalJSON() ([]byte, error) {
	type alias Contact
	return json.Marshal(struct {
		Variant valueobject.Variant `json:"statusVariant"`
		alias
	}{c.Status.Variant(), alias(c)})
}

// ContactInput: тело POST /contacts.
type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}
