// Package entity holds a small set of generated-looking entity schemas
// used as fixtures by this package's end-to-end tests. Each type here
// plays the role a code generator would: it embeds entity.Schema and
// supplies Dataset(), satisfying the entity.Entity capability contract
// without any reflection or dynamic field lookup.
package entity

import (
	"time"

	"github.com/kcmvp/relq/entity"
)

// Account is a user account.
type Account struct {
	entity.Schema
}

func NewAccount() Account {
	return Account{Schema: entity.NewSchema("id",
		entity.NewField[int64]("id", entity.Integer),
		entity.NewField[string]("email", entity.String),
		entity.NewField[string]("nickname", entity.String),
		entity.NewField[int64]("category", entity.Integer),
		entity.NewField[float64]("balance", entity.Float),
		entity.NewField[time.Time]("created_at", entity.UnknownKind),
	)}
}

func (Account) Dataset() string { return "accounts" }

// Profile is a 1:1 extension of Account, joined in application code via
// AccountID rather than a declared foreign key (spec's Non-goals exclude
// joins from the core entirely).
type Profile struct {
	entity.Schema
}

func NewProfile() Profile {
	return Profile{Schema: entity.NewSchema("id",
		entity.NewField[int64]("id", entity.Integer),
		entity.NewField[int64]("account_id", entity.Integer),
		entity.NewField[string]("bio", entity.String),
		entity.NewField[time.Time]("birthday", entity.UnknownKind),
	)}
}

func (Profile) Dataset() string { return "profiles" }

// Order is a customer order.
type Order struct {
	entity.Schema
}

func NewOrder() Order {
	return Order{Schema: entity.NewSchema("id",
		entity.NewField[int64]("id", entity.Integer),
		entity.NewField[int64]("account_id", entity.Integer),
		entity.NewField[float64]("amount", entity.Float),
	)}
}

func (Order) Dataset() string { return "orders" }

// OrderItem is a line item of an Order.
type OrderItem struct {
	entity.Schema
}

func NewOrderItem() OrderItem {
	return OrderItem{Schema: entity.NewSchema("id",
		entity.NewField[int64]("id", entity.Integer),
		entity.NewField[int64]("order_id", entity.Integer),
		entity.NewField[int64]("product_id", entity.Integer),
		entity.NewField[int64]("quantity", entity.Integer),
		entity.NewField[float64]("unit_price", entity.Float),
	)}
}

func (OrderItem) Dataset() string { return "order_items" }

// Product is a catalog product.
type Product struct {
	entity.Schema
}

func NewProduct(vfs ...entity.ValidateFunc[string]) Product {
	return Product{Schema: entity.NewSchema("id",
		entity.NewField[int64]("id", entity.Integer),
		entity.NewField("sku", entity.String, vfs...),
		entity.NewField[string]("name", entity.String),
		entity.NewField[float64]("price", entity.Float),
	)}
}

func (Product) Dataset() string { return "products" }

// Role is an authorization role.
type Role struct {
	entity.Schema
}

func NewRole() Role {
	return Role{Schema: entity.NewSchema("id",
		entity.NewField[int64]("id", entity.Integer),
		entity.NewField[string]("key", entity.String),
		entity.NewField[string]("name", entity.String),
	)}
}

func (Role) Dataset() string { return "roles" }

// AccountRole is the Account <-> Role join table.
type AccountRole struct {
	entity.Schema
}

func NewAccountRole() AccountRole {
	return AccountRole{Schema: entity.NewSchema("",
		entity.NewField[int64]("account_id", entity.Integer),
		entity.NewField[int64]("role_id", entity.Integer),
	)}
}

func (AccountRole) Dataset() string { return "account_roles" }

// PostEntity and CommentEntity are the two small fixtures the
// specification's worked end-to-end scenarios are built around.
type PostEntity struct {
	entity.Schema
}

func NewPostEntity() PostEntity {
	return PostEntity{Schema: entity.NewSchema("id",
		entity.NewField[int64]("id", entity.Integer),
		entity.NewField[string]("title", entity.String),
	)}
}

func (PostEntity) Dataset() string { return "post_entity" }

type CommentEntity struct {
	entity.Schema
}

func NewCommentEntity() CommentEntity {
	return CommentEntity{Schema: entity.NewSchema("id",
		entity.NewField[int64]("id", entity.Integer),
		entity.NewField[string]("text", entity.String),
	)}
}

func (CommentEntity) Dataset() string { return "comment_entity" }
