package checkout

// Branding is the display text and logo shown on the hosted payment page,
// selected by the nickname of the merchant's linked financial account.
type Branding struct {
	TopText    string
	BottomText string
	LogoURL    string
}

var brandings = map[string]map[Locale]Branding{
	"ben2": {
		LocaleHE: {
			TopText:    "בני ברוך קבלה לעם",
			BottomText: "© בני ברוך קבלה לעם",
			LogoURL:    "http://www.kab.co.il/images/hebmain/logo1.png",
		},
		LocaleRU: {
			TopText:    "Бней Барух Каббала лаАм",
			BottomText: "© Бней Барух Каббала лаАм",
			LogoURL:    "http://www.kab.co.il/images/hebmain/logo1.png",
		},
		LocaleEN: {
			TopText:    "Bnei Baruch Kabbalah laAm",
			BottomText: "© Bnei Baruch Kabbalah laAm",
			LogoURL:    "http://www.kab.co.il/images/hebmain/logo1.png",
		},
	},
	"arvut2": {
		LocaleHE: {
			TopText:    "תנועת הערבות לאיחוד העם",
			BottomText: "© תנועת הערבות לאיחוד העם",
			LogoURL:    "http://www.arvut.org/templates/ja_purity_ii/images/arvut_logo.png",
		},
		LocaleRU: {
			TopText:    "Общественное движение «Арвут»",
			BottomText: "© Общественное движение «Арвут»",
			LogoURL:    "http://www.arvut.org/templates/ja_purity_ii/images/arvut_logo.png",
		},
		LocaleEN: {
			TopText:    "The Arvut Social Movement",
			BottomText: "© The Arvut Social Movement",
			LogoURL:    "http://www.arvut.org/templates/ja_purity_ii/images/arvut_logo.png",
		},
	},
}

// brandingFor returns the branding for a nickname and locale, or nil when the
// nickname has no branding configured.
func brandingFor(nickname string, locale Locale) *Branding {
	byLocale, ok := brandings[nickname]
	if !ok {
		return nil
	}
	b, ok := byLocale[locale]
	if !ok {
		b = byLocale[LocaleEN]
	}
	return &b
}

var freeEntryCaptions = map[Locale]string{
	LocaleHE: "הכנס סכום מתאים",
	LocaleRU: "Введите сумму",
	LocaleEN: "Please Select Proper Sum",
}

func freeEntryCaption(locale Locale) string {
	if caption, ok := freeEntryCaptions[locale]; ok {
		return caption
	}
	return freeEntryCaptions[LocaleEN]
}
