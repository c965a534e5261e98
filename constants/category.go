package constants

import "strings"

type Category string

const (
	Food         Category = "FOOD"
	Beverage     Category = "BEVERAGE"
	Snack        Category = "SNACK"
	Grocery      Category = "GROCERY"
	Household    Category = "HOUSEHOLD"
	PersonalCare Category = "PERSONAL_CARE"
	Other        Category = "OTHER"
)

// categoryKeywords maps a category to the lowercase substrings that place an
// item name in it. Indonesian and English terms both appear because receipts
// mix the two freely.
type categoryKeywords struct {
	Category Category
	Keywords []string
}

// CategoryTable is ordered; the first category with a matching keyword wins.
var CategoryTable = []categoryKeywords{
	{Food, []string{"nasi", "mie", "ayam", "daging", "ikan", "sayur", "sushi", "ramen", "butadon", "gyoza", "chicken", "beef", "fish", "rice", "soup"}},
	{Beverage, []string{"teh", "tea", "kopi", "coffee", "air", "water", "jus", "juice", "milk", "susu", "cappuccino", "latte", "espresso", "boba", "bubble"}},
	{Snack, []string{"keripik", "chips", "kue", "cake", "coklat", "chocolate", "permen", "candy", "cookie", "biskuit", "biscuit"}},
	{Grocery, []string{"beras", "rice", "minyak", "oil", "gula", "sugar", "tepung", "flour", "telur", "egg"}},
	{Household, []string{"sabun", "soap", "deterjen", "detergent", "tissue", "pembersih", "cleaner", "sikat", "brush"}},
	{PersonalCare, []string{"shampo", "shampoo", "sikat", "brush", "pasta", "gigi", "tooth", "deodorant", "lotion"}},
}

// CategorizeItem classifies an item name by case-insensitive substring match
// against CategoryTable. Names matching nothing fall to Other.
func CategorizeItem(name string) Category {
	lower := strings.ToLower(name)
	for _, ck := range CategoryTable {
		for _, kw := range ck.Keywords {
			if strings.Contains(lower, kw) {
				return ck.Category
			}
		}
	}
	return Other
}
