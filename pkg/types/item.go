package types

// NoMatchMessage is shown instead of the table when nothing passes the filters.
const NoMatchMessage = "no products matching selected criteria"

type UserId int
type CategoryId int
type ProductId int

type User struct {
	Id   UserId `json:"id"`
	Name string `json:"name"`
	Sex  string `json:"sex"`
}

type Category struct {
	Id      CategoryId `json:"id"`
	Title   string     `json:"title"`
	Icon    string     `json:"icon"`
	OwnerId UserId     `json:"ownerId"`
}

type Product struct {
	Id         ProductId  `json:"id"`
	Name       string     `json:"name"`
	CategoryId CategoryId `json:"categoryId"`
	Price      int        `json:"price"`
}

// ProductView is a product with the display attributes of its category and
// the category owner resolved.
type ProductView struct {
	Product
	CategoryTitle string `json:"categoryTitle"`
	CategoryIcon  string `json:"categoryIcon"`
	UserName      string `json:"userName"`
	UserSex       string `json:"userSex"`
}

// IsFemaleOwner reports whether the owning user is tagged "f".
func (v *ProductView) IsFemaleOwner() bool {
	return v.UserSex == "f"
}
