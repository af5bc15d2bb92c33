package model

type Item struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       *string `json:"image,omitempty"`
	LargeImage  *string `json:"largeImage,omitempty"`
	Price       int     `json:"price"`
}

type AggregateItem struct {
	Count int `json:"count"`
}

type ItemConnection struct {
	Aggregate *AggregateItem `json:"aggregate"`
}

type ItemWhereInput struct {
	ID                  *string `json:"id,omitempty"`
	TitleContains       *string `json:"title_contains,omitempty"`
	DescriptionContains *string `json:"description_contains,omitempty"`
	Search              *string `json:"search,omitempty"`
}

type ItemWhereUniqueInput struct {
	ID string `json:"id"`
}

type ItemCreateInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       *string `json:"image,omitempty"`
	LargeImage  *string `json:"largeImage,omitempty"`
	Price       int     `json:"price"`
}

type ItemUpdateInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	LargeImage  *string `json:"largeImage,omitempty"`
	Price       *int    `json:"price,omitempty"`
}

type User struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Permissions []Permission `json:"permissions"`
}

type SignupInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type CartItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
	Item     *Item  `json:"item,omitempty"`
}

type OrderItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       *string `json:"image,omitempty"`
	LargeImage  *string `json:"largeImage,omitempty"`
	Price       int     `json:"price"`
	Quantity    int     `json:"quantity"`
}

type Order struct {
	ID              string       `json:"id"`
	Items           []*OrderItem `json:"items"`
	Total           int          `json:"total"`
	Charge          string       `json:"charge"`
	PaymentPlatform string       `json:"paymentPlatform"`
	Reference       *string      `json:"reference,omitempty"`
	Trans           *string      `json:"trans,omitempty"`
	Transaction     *string      `json:"transaction,omitempty"`
	Trxref          *string      `json:"trxref,omitempty"`
	CreatedAt       string       `json:"createdAt"`

	UserID uint `json:"-"`
}

type SuccessMessage struct {
	Message *string `json:"message,omitempty"`
}
