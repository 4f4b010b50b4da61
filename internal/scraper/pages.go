// Package scraper builds the site-content snapshot the chat engine grounds
// its replies on: it crawls the utility site's known pages, extracts and
// categorizes their text, and falls back to bundled content when the site
// is unreachable.
package scraper

// pagePaths lists the known site paths per site language. The site has no
// machine-readable sitemap, so the crawler works from this fixed list and
// tolerates pages that 404.
var pagePaths = map[string][]string{
	"arabic": {
		"/ar/Home",
		"/ar/Home/AboutUs",
		"/ar/Home/Vision",
		"/ar/Home/Mission",
		"/ar/Home/History",
		"/ar/Home/CustomerService",
		"/ar/Home/ElectronicServices",
		"/ar/Home/BillInquiry",
		"/ar/Home/PayBill",
		"/ar/Home/PaymentMethods",
		"/ar/Home/NewConnection",
		"/ar/Home/TransferSubscription",
		"/ar/Home/CancelSubscription",
		"/ar/Home/MeterServices",
		"/ar/Home/ComplaintSubmission",
		"/ar/Home/Tariffs",
		"/ar/Home/ElectricityTariffs",
		"/ar/Home/Pricing",
		"/ar/Home/BillingInformation",
		"/ar/Home/ContactUs",
		"/ar/Home/EmergencyNumbers",
		"/ar/Home/ServiceAreas",
		"/ar/Home/OfficeLocations",
		"/ar/Home/WorkingHours",
		"/ar/Home/PowerOutages",
		"/ar/Home/OutageReporting",
		"/ar/Home/MaintenanceServices",
		"/ar/Home/TechnicalSupport",
		"/ar/Home/ElectricalSafety",
		"/ar/Home/SafetyRegulations",
		"/ar/Home/EmergencyProcedures",
		"/ar/Home/FAQ",
		"/ar/Home/BillingFAQ",
		"/ar/Home/ServiceFAQ",
		"/ar/Home/GeneralFAQ",
	},
	"english": {
		"/en/Home",
		"/en/Home/AboutUs",
		"/en/Home/Vision",
		"/en/Home/Mission",
		"/en/Home/History",
		"/en/Home/CustomerService",
		"/en/Home/ElectronicServices",
		"/en/Home/BillInquiry",
		"/en/Home/PayBill",
		"/en/Home/PaymentMethods",
		"/en/Home/NewConnection",
		"/en/Home/TransferSubscription",
		"/en/Home/CancelSubscription",
		"/en/Home/MeterServices",
		"/en/Home/ComplaintSubmission",
		"/en/Home/Tariffs",
		"/en/Home/ElectricityTariffs",
		"/en/Home/Pricing",
		"/en/Home/BillingInformation",
		"/en/Home/ContactUs",
		"/en/Home/EmergencyNumbers",
		"/en/Home/ServiceAreas",
		"/en/Home/OfficeLocations",
		"/en/Home/WorkingHours",
		"/en/Home/PowerOutages",
		"/en/Home/OutageReporting",
		"/en/Home/MaintenanceServices",
		"/en/Home/TechnicalSupport",
		"/en/Home/ElectricalSafety",
		"/en/Home/SafetyRegulations",
		"/en/Home/EmergencyProcedures",
		"/en/Home/FAQ",
		"/en/Home/BillingFAQ",
		"/en/Home/ServiceFAQ",
		"/en/Home/GeneralFAQ",
	},
}

// PageURLs returns the full URLs to crawl for a site-language bucket,
// capped at maxPages. maxPages <= 0 means no cap.
func PageURLs(baseURL, bucket string, maxPages int) []string {
	paths := pagePaths[bucket]
	if maxPages > 0 && len(paths) > maxPages {
		paths = paths[:maxPages]
	}
	urls := make([]string, 0, len(paths))
	for _, p := range paths {
		urls = append(urls, baseURL+p)
	}
	return urls
}
