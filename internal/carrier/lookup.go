package carrier

import "strconv"

// Lookup is the carrier metadata resolved for a phone number
type Lookup struct {
	CarrierName       string `json:"carrier_name"`
	MobileCountryCode string `json:"mobile_country_code"`
	MobileNetworkCode string `json:"mobile_network_code"`
}

// Response is a structured provider payload, either a successful body or a
// recorded failure, as it is stored in cache
type Response map[string]interface{}

// Carrier extracts the carrier section of a provider response. It returns
// false unless name, mobile country code and mobile network code are all
// present. Numeric values are accepted and formatted in decimal.
func (r Response) Carrier() (Lookup, bool) {
	section, ok := r["carrier"].(map[string]interface{})
	if !ok {
		return Lookup{}, false
	}

	name, ok := field(section["name"])
	if !ok {
		return Lookup{}, false
	}

	mcc, ok := field(section["mobile_country_code"])
	if !ok {
		return Lookup{}, false
	}

	mnc, ok := field(section["mobile_network_code"])
	if !ok {
		return Lookup{}, false
	}

	return Lookup{CarrierName: name, MobileCountryCode: mcc, MobileNetworkCode: mnc}, true
}

func field(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}
