package rostergen

// Name pools for synthetic rosters. Deliberately small; collisions are fine
// since identity comes from the generated ids.
var givenNames = []string{
	"Alice", "Bruno", "Chiara", "Daniel", "Elodie", "Farid", "Greta", "Hugo",
	"Ines", "Jonas", "Katya", "Luca", "Marta", "Nils", "Oriane", "Pavel",
	"Quentin", "Rosa", "Sven", "Teresa", "Ugo", "Vera", "Wanda", "Yusuf", "Zoe",
}

var familyNames = []string{
	"Moreau", "Bianchi", "Kovacs", "Schmidt", "Dubois", "Rossi", "Novak",
	"Petit", "Weber", "Fontaine", "Marchetti", "Horvath", "Lefevre", "Keller",
	"Santoro", "Varga", "Roux", "Brandt", "Colombo", "Takacs",
}

var clubNames = []string{
	"CE Melun", "Lyon SE", "Torino Scherma", "Budapest VK", "Berlin FC",
	"Milano Spada", "Praha Serm", "Marseille EC", "Wien FU", "Krakow SzK",
	"Gent SK", "Lisboa CE",
}

// nations are IOC-style codes as used on FIE ranking lists.
var nations = []string{
	"FRA", "ITA", "HUN", "GER", "CZE", "AUT", "POL", "BEL", "POR", "SUI",
	"ESP", "NED",
}
