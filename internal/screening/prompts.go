package screening

// User-facing texts. The bot speaks Russian; intent detection elsewhere in the
// machine compares against these named constants, never against inline strings.
const (
	// StartTestButton is the readiness token. Only this literal advances the
	// session from StateAwaitingReadiness.
	StartTestButton = "Начать тестирование✍️"

	MsgGreeting           = "Привет!👋 Это бот для поиска вакансий. Напиши нам своё Ф.И.О📝"
	MsgAskName            = "Введите своё ФИО 🤓"
	MsgAskResume          = "Отлично!👍 Сбрось своё резюме, и мы попробуем показать тебе наиболее релевантные вакансии!😉"
	MsgFileAccepted       = "Файл принят!👍 Подожди немного⏳"
	MsgResumeAccepted     = "Резюме принято! ✅ Подожди немного⏳"
	MsgFileBroken         = "Кажется, что-то не так с файлом 🤯 Попробуй скинуть в формате txt!📄"
	MsgAnalyzerError      = "❗️Произошла какая-то ошибка с анализатором😢 Мы уже решаем эту проблему!🛠 Попробуйте позже🤓"
	MsgOpeningsArrived    = "А вот и твои вакансии подъехали!📨 Выбери вакансию, на которую хотел бы пройти тестирование📚"
	MsgChooseOpening      = "После того, как выберешь вакансию, нажми на одну из кнопок чтобы начать тестирование.✍️"
	MsgChooseFromKeyboard = "❗️Кажется, ты написал что-то не то😢 Нажми на одну из кнопок на клавиатуре.☝️"
	MsgScreeningError     = "❗️Не получилось загрузить тест😢 Попробуй выбрать вакансию ещё раз чуть позже🛠"
	MsgGoodChoice         = "Отличный выбор!👍 Нажми \"Начать тестирование\" когда будешь готов сдавать тест!✔️\n❗️Имей ввиду, что время прохождения тестирования тоже будет учитываться.⏳"
	MsgLetsGo             = "Окей, начинаем!😉"
	MsgChooseAnswer       = "Выбери один из ответов с клавиатуры 📲"
	MsgTestFinished       = "Тестирование окончено!👍 Спасибо за уделенное нам время!😊✌️"
	MsgSubmissionError    = "❗️Не удалось отправить твои результаты😢 Ответь на последний вопрос ещё раз, и мы попробуем снова🛠"
	MsgSendAnotherResume  = "Если хочешь получить еще выборку вакансий, отправь нам резюме📨"
)
