package i18n

var kazakh = table{
	KeyTitle:                     "Көлік шағымдары панелі",
	KeySubtitle:                  "Автобус бағыттары бойынша шағымдарды нақты уақытта бақылау және талдау",
	KeyUpdating:                  "Әр 5 секундта жаңарту",
	KeyTotalComplaints:           "Барлық шағымдар",
	KeyRoutesWithComplaints:      "Шағымдары бар бағыттар",
	KeyHighPriority:              "Жоғары басымдық",
	KeyProblematicRoutes:         "Ең проблемалы бағыттар",
	KeyTopRoutes:                 "Шағым саны бойынша топ-10 бағыттар",
	KeyLevelDistribution:         "Шағымдардың деңгейлері бойынша үлестірімі",
	KeyLevelStackChart:           "Шағымдардың маңыздылығының стектік диаграммасы",
	KeyCategoryFrequency:         "Санаттар бойынша аспектілердің жиілігі",
	KeyCategoryDistribution:      "Мәселе түрлері бойынша шағымдардың үлестірімі",
	KeyHigh:                      "Жоғары",
	KeyMedium:                    "Орташа",
	KeyLow:                       "Төмен",
	KeyDelay:                     "Кешігу",
	KeySafetyIssue:               "Қауіпсіздік",
	KeyCleanliness:               "Тазалық",
	KeyDriverBehavior:            "Жүргізушінің мінез-құлқы",
	KeyTechnicalIssue:            "Техникалық мәселелер",
	KeyOvercrowding:              "Тығыздық",
	KeyRouteIssue:                "Бағыт мәселелері",
	KeyOther:                     "Басқа",
	KeyRoute:                     "Бағыт",
	KeyBus:                       "Автобус",
	KeyUnknown:                   "Белгісіз",
	KeyComplaintsCount:           "Шағымдар саны",
	KeyNoData:                    "Көрсету үшін деректер жоқ",
	KeyErrorLoading:              "Деректерді жүктеу қатесі",
	KeyErrorMessage:              "API-ге қосылу мүмкін болмады. Дерекқорға қосылымды тексеріңіз.",
	KeyFetchFailed:               "Шағымдарды алу мүмкін болмады",
	KeyComplaintAccepted:         "Шағым сәтті жіберілді",
	KeyComplaintTextRequired:     "Шағым мәтінін толтыру міндетті",
	KeyComplaintProcessingFailed: "Шағымды өңдеу кезінде қате",
	KeyInvalidRequest:            "Қате сұраныс",
	KeyPayloadTooLarge:           "Сұраныс тым үлкен",
	KeyQRParseError:              "Деректерді тану мүмкін болмады. QR-кодты қайта сканерлеңіз.",
	KeyThankYou:                  "Өтінішіңізге рахмет. Біз оны жақын арада қарастырамыз.",
	KeyTheme:                     "Тақырып",
	KeyLanguage:                  "Тіл",
	KeyLight:                     "Ашық",
	KeyDark:                      "Қараңғы",
	KeySystem:                    "Жүйелік",
}

var kazakhExamples = []string{
	"Жүргізуші жылдамдықты асырды және ЖҚЕ сақтамады",
	"Автобус аялдамада тоқтамады",
	"Жүргізуші қозғалыс кезінде телефонмен сөйлесті",
	"Салонда кондиционер жұмыс істемейді",
}
