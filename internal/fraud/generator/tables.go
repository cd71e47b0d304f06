package generator

// Currencies seen in the alert feed.
var currencies = []string{"USD", "EUR", "GBP", "CAD"}

// Merchant name components - adjective + noun combinations.
var merchantAdjectives = []string{
	"Global", "Prime", "Urban", "Coastal", "Summit",
	"Velvet", "Rapid", "Golden", "Northern", "Metro",
	"Silver", "Atlas", "Crescent", "Vertex", "Harbor",
}

var merchantNouns = []string{
	"Traders", "Outfitters", "Market", "Supply Co", "Goods",
	"Retail Group", "Commerce", "Exchange", "Direct", "Depot",
	"Collective", "Emporium", "Logistics", "Provisions", "Holdings",
}

var merchantCategories = []string{
	"Online Retail", "Gas Station", "Restaurant", "ATM", "Grocery Store",
	"Electronics", "Pharmacy", "Hotel", "Airlines", "Insurance",
}

var cardTypes = []string{"visa", "mastercard", "amex", "discover"}

var cardIssuers = []string{"Chase Bank", "Wells Fargo", "Bank of America", "Citibank"}

var countryCodes = []string{
	"US", "CA", "GB", "DE", "FR", "BR", "MX", "JP", "AU", "NG",
	"IN", "ES", "IT", "NL", "SE", "PL", "ZA", "SG", "KR", "AR",
}

var cityNames = []string{
	"Austin", "Toronto", "London", "Berlin", "Lyon",
	"Sao Paulo", "Monterrey", "Osaka", "Perth", "Lagos",
	"Pune", "Valencia", "Milan", "Rotterdam", "Uppsala",
}

// Analyst names for assignment and note authorship.
var analystNames = []string{
	"Sarah Chen", "Alex Morgan", "Priya Sharma", "Diego Reyes",
	"Amara Diallo", "Yuki Tanaka", "Omar Hakim", "Elena Vargas",
	"Kofi Mensah", "Maya Nguyen", "Tariq Abbasi", "Luna Castillo",
}

var ruleTriggers = []string{
	"HIGH_VALUE_TRANSACTION", "VELOCITY_CHECK", "GEOGRAPHIC_ANOMALY",
	"DEVICE_RISK", "MERCHANT_RISK", "TIME_PATTERN",
}

var ruleSeverities = []string{"low", "medium", "high"}

var emailDomains = []string{
	"example.com", "mailbox.net", "postbox.io", "inbox.org",
}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_5) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148",
	"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Mobile Safari/537.36",
}

// Free-text note bodies for seeded transactions.
var noteTexts = []string{
	"Customer contacted via email, awaiting response.",
	"Velocity pattern matches prior confirmed fraud on this BIN.",
	"Cardholder confirmed travel, location mismatch explained.",
	"Requested additional documentation from merchant.",
	"Device fingerprint previously seen on a blocked account.",
	"Chargeback history reviewed, nothing outstanding.",
	"Issuer flagged the card for unrelated activity last month.",
	"Left voicemail for the customer, follow up tomorrow.",
}

// Timeline actions for seeded transactions.
var timelineActions = []string{
	"Transaction Detected", "Risk Assessment Completed", "Assigned to Analyst",
	"Customer Contacted", "Additional Analysis", "Status Updated",
}

var timelineDescriptions = []string{
	"Automated screening placed the transaction in the review queue.",
	"Model scoring completed and explanation features recorded.",
	"Queue routing assigned the alert for manual review.",
	"Outbound contact attempted to verify the purchase.",
	"Secondary checks run against device and merchant history.",
	"Triage state changed after analyst review.",
}

// Feature templates for the risk-assessment block. Impact ranges mirror the
// model output this mock stands in for: early features dominate the score.
type featureTemplate struct {
	name        string
	description string
	impactMin   float64
	impactMax   float64
}

var featureTemplates = []featureTemplate{
	{"Transaction Amount", "Impact of transaction amount on risk assessment", 0.10, 0.40},
	{"Velocity Score", "Frequency and pattern of recent transactions", 0.05, 0.30},
	{"Geographic Risk", "Risk associated with transaction location", -0.10, 0.20},
	{"Device Risk", "Device fingerprint and behavioral analysis", -0.05, 0.15},
	{"Merchant Risk", "Historical risk associated with merchant", -0.05, 0.10},
	{"Time Pattern", "Temporal patterns and anomalies", -0.10, 0.08},
}
