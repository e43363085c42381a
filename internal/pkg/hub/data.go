package hub

// Reference data for the default registry. Tier ranks follow the national
// comprehensive transport hub classification: tier 1 gateways first, then
// major interchange cities, then regional hubs and rail-only interchange
// stations.
var defaultHubs = []Hub{
	// tier 1: national gateways
	{City: "Beijing", Tier: 1, HasAirport: true, HasRail: true, International: true},
	{City: "Shanghai", Tier: 1, HasAirport: true, HasRail: true, International: true},
	{City: "Guangzhou", Tier: 1, HasAirport: true, HasRail: true, International: true},

	// tier 2: major dual-mode hubs
	{City: "Shenzhen", Tier: 2, HasAirport: true, HasRail: true, International: true},
	{City: "Chengdu", Tier: 2, HasAirport: true, HasRail: true, International: true},
	{City: "Chongqing", Tier: 2, HasAirport: true, HasRail: true, International: true},
	{City: "Xi'an", Tier: 2, HasAirport: true, HasRail: true, International: true},
	{City: "Zhengzhou", Tier: 2, HasAirport: true, HasRail: true},
	{City: "Wuhan", Tier: 2, HasAirport: true, HasRail: true},

	// tier 3: strong regional hubs
	{City: "Kunming", Tier: 3, HasAirport: true, HasRail: true, International: true},
	{City: "Hangzhou", Tier: 3, HasAirport: true, HasRail: true, International: true},
	{City: "Nanjing", Tier: 3, HasAirport: true, HasRail: true},
	{City: "Changsha", Tier: 3, HasAirport: true, HasRail: true},
	{City: "Shenyang", Tier: 3, HasAirport: true, HasRail: true},
	{City: "Harbin", Tier: 3, HasAirport: true, HasRail: true, International: true},
	{City: "Urumqi", Tier: 3, HasAirport: true, HasRail: true, International: true},

	// tier 4: regional hubs and rail interchange stations
	{City: "Tianjin", Tier: 4, HasAirport: true, HasRail: true},
	{City: "Jinan", Tier: 4, HasAirport: true, HasRail: true},
	{City: "Hefei", Tier: 4, HasAirport: true, HasRail: true},
	{City: "Qingdao", Tier: 4, HasAirport: true, HasRail: false},
	{City: "Xiamen", Tier: 4, HasAirport: true, HasRail: false},
	{City: "Dalian", Tier: 4, HasAirport: true, HasRail: false},
	{City: "Guiyang", Tier: 4, HasAirport: true, HasRail: true},
	{City: "Lanzhou", Tier: 4, HasAirport: true, HasRail: true},
	{City: "Nanning", Tier: 4, HasAirport: true, HasRail: true},
	{City: "Nanchang", Tier: 4, HasAirport: true, HasRail: true},
	{City: "Xuzhou", Tier: 4, HasAirport: false, HasRail: true},
	{City: "Wuxi", Tier: 4, HasAirport: false, HasRail: true},
	{City: "Changzhou", Tier: 4, HasAirport: false, HasRail: true},
	{City: "Hengyang", Tier: 4, HasAirport: false, HasRail: true},
}

// Domestic cities that are not hubs themselves but appear as journey
// endpoints. The classifier treats unknown cities as domestic, so this list
// only needs the common cases that would otherwise be ambiguous.
var defaultDomesticCities = []string{
	"Changzhi", "Luoyang", "Yichang", "Mianyang", "Zhuhai", "Weihai",
	"Lijiang", "Dunhuang", "Beihai", "Yanji", "Datong", "Baotou",
}

// Cities known to lie outside the domestic rail network. The train source
// cannot serve legs touching any of these.
var defaultInternationalCities = []string{
	// southeast asia
	"Bangkok", "Singapore", "Kuala Lumpur", "Jakarta", "Manila", "Hanoi",
	"Ho Chi Minh City", "Phnom Penh", "Vientiane", "Yangon", "Chiang Mai",
	"Phuket", "Bali", "Da Nang", "Siem Reap",
	// east asia
	"Tokyo", "Osaka", "Nagoya", "Fukuoka", "Sapporo", "Okinawa",
	"Seoul", "Busan", "Jeju", "Ulaanbaatar",
	"Hong Kong", "Macau", "Taipei",
	// south asia and middle east
	"New Delhi", "Mumbai", "Bangalore", "Colombo", "Male", "Kathmandu",
	"Dubai", "Abu Dhabi", "Doha", "Riyadh", "Istanbul", "Tel Aviv",
	// europe
	"London", "Paris", "Frankfurt", "Amsterdam", "Munich", "Zurich",
	"Rome", "Milan", "Madrid", "Barcelona", "Vienna", "Moscow",
	"Helsinki", "Stockholm", "Copenhagen", "Warsaw", "Prague", "Dublin",
	// americas
	"New York", "Los Angeles", "San Francisco", "Chicago", "Seattle",
	"Boston", "Washington", "Dallas", "Houston", "Atlanta", "Miami",
	"Vancouver", "Toronto", "Montreal", "Mexico City", "Sao Paulo",
	"Buenos Aires", "Lima",
	// oceania and africa
	"Sydney", "Melbourne", "Brisbane", "Perth", "Auckland", "Wellington",
	"Cairo", "Johannesburg", "Cape Town", "Nairobi", "Casablanca",
}

// DefaultRegistry returns the built-in reference data set.
func DefaultRegistry() *Registry {
	return NewRegistry(defaultHubs, defaultDomesticCities, defaultInternationalCities)
}
