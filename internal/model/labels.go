package model

var customerTypeLabels = map[CustomerType]string{
	CustomerTypeDealer:            "Bayi",
	CustomerTypeAuthorizedService: "Yetkili Servis",
	CustomerTypeActive:            "Aktif Müşteri",
	CustomerTypePotential:         "Potansiyel Müşteri",
	CustomerTypeCorporateEndUser:  "Kurumsal Son Kullanıcı",
	CustomerTypeProjectCustomer:   "Proje Müşterisi",
	CustomerTypeIndividual:        "Bireysel",
	CustomerTypeExportDistributor: "İhracat Distribütörü",
	CustomerTypeExportProject:     "İhracat Projesi",
}

var activityTypeLabels = map[ActivityType]string{
	ActivityTypeIntroCall:       "Tanışma Araması",
	ActivityTypeWhatsAppMessage: "WhatsApp Mesajı",
	ActivityTypeEmail:           "E-posta",
	ActivityTypeQuoteSent:       "Teklif Gönderildi",
	ActivityTypeShipment:        "Sevkiyat",
	ActivityTypeInstallation:    "Kurulum / Montaj",
	ActivityTypeNote:            "Not",
}

// Label returns the display label of the customer type, or the raw value when unknown.
func (t CustomerType) Label() string {
	if l, ok := customerTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Label returns the display label of the activity type, or the raw value when unknown.
func (t ActivityType) Label() string {
	if l, ok := activityTypeLabels[t]; ok {
		return l
	}
	return string(t)
}
