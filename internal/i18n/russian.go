package i18n

var russian = table{
	KeyTitle:                     "Панель жалоб на транспорт",
	KeySubtitle:                  "Мониторинг и анализ жалоб на автобусные маршруты в реальном времени",
	KeyUpdating:                  "Обновление каждые 5 сек",
	KeyTotalComplaints:           "Всего жалоб",
	KeyRoutesWithComplaints:      "Маршрутов с жалобами",
	KeyHighPriority:              "Высокий приоритет",
	KeyProblematicRoutes:         "Самые проблемные маршруты",
	KeyTopRoutes:                 "Топ-10 маршрутов по количеству жалоб",
	KeyLevelDistribution:         "Распределение жалоб по уровням",
	KeyLevelStackChart:           "Стековая диаграмма критичности жалоб",
	KeyCategoryFrequency:         "Частота аспектов по категориям",
	KeyCategoryDistribution:      "Распределение жалоб по типам проблем",
	KeyHigh:                      "Высокий",
	KeyMedium:                    "Средний",
	KeyLow:                       "Низкий",
	KeyDelay:                     "Задержка",
	KeySafetyIssue:               "Безопасность",
	KeyCleanliness:               "Чистота",
	KeyDriverBehavior:            "Поведение водителя",
	KeyTechnicalIssue:            "Технические проблемы",
	KeyOvercrowding:              "Переполненность",
	KeyRouteIssue:                "Проблемы с маршрутом",
	KeyOther:                     "Другое",
	KeyRoute:                     "Маршрут",
	KeyBus:                       "Автобус",
	KeyUnknown:                   "Неизвестно",
	KeyComplaintsCount:           "Количество жалоб",
	KeyNoData:                    "Нет данных для отображения",
	KeyErrorLoading:              "Ошибка загрузки данных",
	KeyErrorMessage:              "Не удалось подключиться к API. Проверьте подключение к базе данных.",
	KeyFetchFailed:               "Не удалось получить жалобы",
	KeyComplaintAccepted:         "Жалоба успешно отправлена",
	KeyComplaintTextRequired:     "Текст жалобы обязателен для заполнения",
	KeyComplaintProcessingFailed: "Ошибка при обработке жалобы",
	KeyInvalidRequest:            "Некорректный запрос",
	KeyPayloadTooLarge:           "Слишком большой запрос",
	KeyQRParseError:              "Не удалось распознать данные. Отсканируйте QR-код повторно.",
	KeyThankYou:                  "Спасибо за ваше обращение. Мы рассмотрим его в ближайшее время.",
	KeyTheme:                     "Тема",
	KeyLanguage:                  "Язык",
	KeyLight:                     "Светлая",
	KeyDark:                      "Темная",
	KeySystem:                    "Системная",
}

var russianExamples = []string{
	"Водитель превысил скорость и не соблюдал ПДД",
	"Автобус не остановился на остановке",
	"Водитель разговаривал по телефону во время движения",
	"В салоне не работает кондиционер",
}
