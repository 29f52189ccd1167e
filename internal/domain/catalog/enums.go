package catalog

// Closed enumerations shared by catalog validation, booking creation, and the
// discovery filter surface. These are the single source of truth; nothing else
// in the codebase repeats these lists.

var Categories = []string{
	"Haircuts",
	"Home Repairs",
	"Cleaning",
	"Gardening",
	"Personal Training",
	"Pet Care",
}

var Cities = []string{
	"Mumbai",
	"Pune",
	"Bangalore",
}

// TimeSlots are the bookable slots offered at booking time. A booking may also
// carry no slot at all.
var TimeSlots = []string{
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
	"05:00 PM",
}

func IsValidCategory(category string) bool {
	return contains(Categories, category)
}

func IsValidCity(city string) bool {
	return contains(Cities, city)
}

func IsValidTimeSlot(slot string) bool {
	return contains(TimeSlots, slot)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
