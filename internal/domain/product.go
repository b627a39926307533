package domain

import (
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Record is the schemaless shape the record store persists. Products are
// decoded from it at read time; the schema is only enforced at the write
// boundary.
type Record = map[string]interface{}

// Product is an affiliate catalog item.
type Product struct {
	ID              string    `json:"id" mapstructure:"-" csv:"id"`
	Name            string    `json:"name" mapstructure:"name" csv:"name"`
	Details         string    `json:"details" mapstructure:"details" csv:"details"`
	AboutItem       string    `json:"aboutItem" mapstructure:"aboutItem" csv:"about_item"`
	Price           float64   `json:"price" mapstructure:"price" csv:"price"`
	Rating          float64   `json:"rating" mapstructure:"rating" csv:"rating"`
	Category        string    `json:"category" mapstructure:"category" csv:"category"`
	Subcategory     string    `json:"subcategory" mapstructure:"subcategory" csv:"subcategory"`
	Item            string    `json:"item" mapstructure:"item" csv:"item"`
	ImageURL        string    `json:"imageUrl" mapstructure:"imageUrl" csv:"image_url"`
	ReferralLink    string    `json:"referralLink" mapstructure:"referralLink" csv:"referral_link"`
	ReturnAvailable bool      `json:"returnAvailable" mapstructure:"returnAvailable" csv:"return_available"`
	FreeDelivery    bool      `json:"freeDelivery" mapstructure:"freeDelivery" csv:"free_delivery"`
	TopBrand        bool      `json:"topBrand" mapstructure:"topBrand" csv:"top_brand"`
	Favorite        bool      `json:"favorite" mapstructure:"favorite" csv:"favorite"`
	LinkStatus      string    `json:"linkStatus,omitempty" mapstructure:"linkStatus" csv:"-"`
	LinkCheckedAt   time.Time `json:"linkCheckedAt,omitempty" mapstructure:"linkCheckedAt" csv:"-"`
	CreatedAt       time.Time `json:"createdAt" mapstructure:"createdAt" csv:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" mapstructure:"updatedAt" csv:"updated_at"`
}

// ProductDraft is the admin submission payload. Validation tags are enforced
// by the web layer before any record reaches the store.
type ProductDraft struct {
	Name            string  `json:"name" csv:"name" validate:"required,min=1,max=200"`
	Details         string  `json:"details" csv:"details" validate:"omitempty,max=5000"`
	AboutItem       string  `json:"aboutItem" csv:"about_item" validate:"omitempty,max=5000"`
	Price           float64 `json:"price" csv:"price" validate:"gte=0"`
	Rating          float64 `json:"rating" csv:"rating" validate:"gte=1,lte=5"`
	Category        string  `json:"category" csv:"category" validate:"required,min=1,max=200"`
	Subcategory     string  `json:"subcategory" csv:"subcategory" validate:"omitempty,max=200"`
	Item            string  `json:"item" csv:"item" validate:"omitempty,max=200"`
	ImageURL        string  `json:"imageUrl" csv:"image_url" validate:"omitempty,url"`
	ReferralLink    string  `json:"referralLink" csv:"referral_link" validate:"omitempty,url"`
	ReturnAvailable bool    `json:"returnAvailable" csv:"return_available"`
	FreeDelivery    bool    `json:"freeDelivery" csv:"free_delivery"`
	TopBrand        bool    `json:"topBrand" csv:"top_brand"`
	Favorite        bool    `json:"favorite" csv:"favorite"`
}

// Record converts the draft to the stored shape. Timestamps are the caller's
// concern: create stamps both, update preserves the original createdAt.
func (d ProductDraft) Record(createdAt, updatedAt time.Time) Record {
	return Record{
		"name":            d.Name,
		"details":         d.Details,
		"aboutItem":       d.AboutItem,
		"price":           d.Price,
		"rating":          d.Rating,
		"category":        d.Category,
		"subcategory":     d.Subcategory,
		"item":            d.Item,
		"imageUrl":        d.ImageURL,
		"referralLink":    d.ReferralLink,
		"returnAvailable": d.ReturnAvailable,
		"freeDelivery":    d.FreeDelivery,
		"topBrand":        d.TopBrand,
		"favorite":        d.Favorite,
		"createdAt":       createdAt.UTC().Format(time.RFC3339),
		"updatedAt":       updatedAt.UTC().Format(time.RFC3339),
	}
}

// Draft rebuilds an editable draft from a product, for CSV round trips and
// admin edit forms.
func (p Product) Draft() ProductDraft {
	return ProductDraft{
		Name:            p.Name,
		Details:         p.Details,
		AboutItem:       p.AboutItem,
		Price:           p.Price,
		Rating:          p.Rating,
		Category:        p.Category,
		Subcategory:     p.Subcategory,
		Item:            p.Item,
		ImageURL:        p.ImageURL,
		ReferralLink:    p.ReferralLink,
		ReturnAvailable: p.ReturnAvailable,
		FreeDelivery:    p.FreeDelivery,
		TopBrand:        p.TopBrand,
		Favorite:        p.Favorite,
	}
}

// ProductFromRecord decodes a stored record into a Product. Numeric fields
// stored as strings are coerced, timestamps parse from RFC3339, unknown
// fields are ignored and missing ones default to zero values. A missing
// createdAt therefore sorts as epoch zero under the newest ordering.
func ProductFromRecord(id string, rec Record) (Product, error) {
	var p Product
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return p, errors.Wrap(err, "build product decoder")
	}
	if err := decoder.Decode(rec); err != nil {
		return p, errors.Wrapf(err, "decode product %s", id)
	}
	p.ID = id
	return p, nil
}
