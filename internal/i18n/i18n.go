// Package i18n holds the bot's user-facing strings in the supported
// languages. Lookups fall back to English per key so a partially translated
// language never breaks a reply.
package i18n

// Languages maps language codes to their display labels.
var Languages = map[string]string{
	"en": "🇬🇧 English",
	"ru": "🇷🇺 Russian",
	"uz": "🇺🇿 Uzbek",
}

// DefaultLanguage is used when a user has no stored language or the stored
// value is unknown.
const DefaultLanguage = "en"

// IsSupported reports whether code is a known language.
func IsSupported(code string) bool {
	_, ok := Languages[code]
	return ok
}

// T returns the translation for key in lang, falling back to English when
// the language or the key is missing.
func T(lang, key string) string {
	if table, ok := translations[lang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	return translations[DefaultLanguage][key]
}

var translations = map[string]map[string]string{
	"en": {
		"welcome":           "🌟 *Welcome to SimpleLearn! Your AI Study Assistant* 🌟\n\n✨ *I'm here to help you learn smarter, not harder!* ✨\n\n📚 *What I can do for you:*\n• 📄 Transform long lectures into concise summaries\n• 🎥 Extract key points from video lectures\n• 🎤 Transcribe and summarize audio recordings\n• 🔗 Summarize web articles and research papers\n• 💬 Condense long text passages\n\n🚀 *Ready to start? Just share your content:*\n• 📄 A document (lecture, textbook, paper)\n• 🎥 A video • 🎤 An audio recording • 🔗 A web link • 💬 Some text\n\nI'll create a perfect summary for you!",
		"choose_language":   "🌍 *Let's Get Started!* 🌍\n\n*Please select your preferred language:*",
		"language_selected": "✨ *Perfect! English is now set as your language!* ✨\n\n🚀 *You're all set to start learning with SimpleLearn!*",
		"help":              "📚 *SimpleLearn Help Center* 📚\n\n🎯 *What I Can Help You With:*\n📄 PDF Documents\n📝 Word Files (.docx)\n📃 Text Documents (.txt)\n🎥 Video Files\n🎤 Audio Files\n🔗 Web Articles\n💬 Text Messages\n\n⚡️ *Quick Commands:*\n• /start - Begin a new session\n• /settings - Customize your experience\n• /upgrade - Go premium\n• /help - Show this guide",
		"send_document":     "📤 *Ready to Learn!* 📤\n\n✨ *Please share your content with me:*\n• 📄 A document\n• 🎥 A video\n• 🎤 An audio recording\n• 🔗 A web link\n• 💬 Some text\n\nI'll create a perfect summary for you!",
		"processing":        "⏳ *Processing Your Content...* ⏳\n\n🔍 *I'm carefully analyzing your document*\n⏱️ *This might take a moment, but it's worth the wait!*",
		"summarizing":       "🧠 *Creating Your Perfect Summary...* 🧠\n\n📊 *Analyzing key points*\n✨ *Identifying main ideas*\n\n*Almost there!*",
		"error":             "❌ *Oops! Something's Not Right* ❌\n\n😔 *I couldn't process your request*\n\n💡 *Please try:*\n• Sending a different document\n• Checking the file format\n• Making sure the file isn't too large",
		"language":          "🌐 Language Settings",
		"settings":          "⚙️ Settings",
		"current_language":  "Current language:",
		"current_style":     "Current summary style:",
		"summary_style":     "📝 Summary Style",
		"choose_style":      "✨ *Choose your preferred summary style:*\n\nSelect how detailed you want your summaries to be:",
		"style_short":       "📌 Short (2-3 points)",
		"style_medium":      "📋 Medium (4-6 points)",
		"style_long":        "📄 Long (7-10 points)",
		"style_selected":    "✅ *Summary style updated!*\n\nYour summaries will now be in *%s* format.",
		"unsupported":       "⚠️ *Format Not Supported* ⚠️\n\n📝 *I can work with:*\n• PDF, DOCX and TXT files\n• Video and audio files\n• Web links\n• Text messages",
		"transcribing":      "🎤 *Transcribing Your Audio...* 🎤\n\n🎵 *Converting speech to text*\n⏱️ *This may take a few moments*",
		"processing_video":  "🎥 *Processing Your Video...* 🎥\n\n🎬 *Extracting audio*\n📝 *Converting to text*\n⏱️ *This may take several minutes*",
		"no_api_key":        "⚠️ *Audio/Video Feature Unavailable* ⚠️\n\n🔑 *API Key is missing*\n\n📞 *Please contact the administrator to enable this feature*",
		"premium_required":  "🔒 *Premium Feature*\n\nCustom summary styles are available for premium users. Upgrade with /upgrade to access this feature and more!",
		"file_too_large":    "⚠️ *File Too Large* ⚠️\n\n📏 The file is %.1f MB, which exceeds the maximum allowed size of %d MB.\n\n💡 *Please try:*\n• Compressing the file\n• Splitting it into smaller parts",
		"too_short":         "⚠️ *Content too short*\n\nThe extracted content is too short to create a meaningful summary. Please provide more content.",
		"no_text":           "❌ *No Text Extracted*\n\nCould not extract any text. Please try different content.",
		"busy":              "⏳ *Server Busy*\n\nI'm handling a lot of requests right now. Please try again in a moment.",
		"web_error":         "⚠️ *URL Access Issue*\n\nPlease check if:\n• The URL is correct\n• The website allows access\n• The site isn't behind a login",
		"extracted_preview": "✅ *Content Successfully Extracted*\n\n*Preview:*\n```\n%s\n```\n\nWould you like me to create a summary of this content?",
		"summarize_button":  "✅ Summarize",
		"transcript_audio":  "📝 *Audio Transcript*",
		"transcript_video":  "📝 *Transcript of Your Video*",
		"upgrade":           "💎 *SimpleLearn Premium* 💎\n\n✨ *What you get:*\n• 2x larger file size limits\n• Custom summary styles\n• Priority processing\n\n*30 days for 30,000 UZS*",
		"upgrade_button":    "💎 Upgrade (30,000 UZS)",
		"premium_active":    "💎 *You're Premium!*\n\nYour subscription is active until %s.",
		"premium_thanks":    "🎉 *Payment received!*\n\nPremium is now active for 30 days. Enjoy bigger file limits and custom summary styles!",
		"payments_offline":  "⚠️ *Payments Unavailable*\n\nPayments are not configured yet. Please contact the administrator.",
	},
	"ru": {
		"welcome":           "🌟 *Добро пожаловать в SimpleLearn! Ваш ИИ-помощник в обучении* 🌟\n\n📚 *Что я могу:*\n• 📄 Превратить длинные лекции в краткие конспекты\n• 🎥 Извлечь ключевые моменты из видео\n• 🎤 Расшифровать и обобщить аудиозаписи\n• 🔗 Резюмировать веб-статьи\n• 💬 Сокращать длинные тексты\n\n🚀 *Поделитесь контентом, и я создам идеальное резюме!*",
		"choose_language":   "🌍 *Давайте начнем!* 🌍\n\n*Пожалуйста, выберите предпочитаемый язык:*",
		"language_selected": "✨ *Отлично! Русский язык успешно установлен!* ✨",
		"help":              "📚 *Центр помощи SimpleLearn* 📚\n\n🎯 *С чем я могу помочь:*\n📄 PDF, 📝 DOCX, 📃 TXT\n🎥 Видео, 🎤 Аудио, 🔗 Веб-статьи, 💬 Текст\n\n⚡️ *Команды:*\n• /start - Начать новую сессию\n• /settings - Настройки\n• /upgrade - Премиум\n• /help - Это руководство",
		"send_document":     "📤 *Готов к работе!* 📤\n\n✨ *Пожалуйста, поделитесь контентом:*\n• 📄 Документ • 🎥 Видео • 🎤 Аудио • 🔗 Ссылка • 💬 Текст",
		"processing":        "⏳ *Обработка вашего контента...* ⏳\n\n🔍 *Я внимательно анализирую ваш документ*",
		"summarizing":       "🧠 *Создание вашего идеального резюме...* 🧠\n\n📊 *Анализ ключевых моментов*\n\n*Почти готово!*",
		"error":             "❌ *Упс! Что-то пошло не так* ❌\n\n💡 *Попробуйте:*\n• Отправить другой документ\n• Проверить формат файла\n• Убедиться, что файл не слишком большой",
		"language":          "🌐 Настройки языка",
		"settings":          "⚙️ Настройки",
		"current_language":  "Текущий язык:",
		"current_style":     "Текущий стиль:",
		"summary_style":     "📝 Стиль конспекта",
		"choose_style":      "✨ *Выберите предпочитаемый стиль конспекта:*",
		"style_short":       "📌 Краткий (2-3 пункта)",
		"style_medium":      "📋 Средний (4-6 пунктов)",
		"style_long":        "📄 Подробный (7-10 пунктов)",
		"style_selected":    "✅ *Стиль конспекта обновлен!*\n\nВаши конспекты теперь будут в формате *%s*.",
		"unsupported":       "⚠️ *Формат не поддерживается* ⚠️\n\n📝 *Я работаю с:*\n• PDF, DOCX и TXT файлами\n• Видео и аудио\n• Веб-ссылками\n• Текстом",
		"transcribing":      "🎤 *Транскрибирование аудио...* 🎤\n\n⏱️ *Это может занять несколько минут*",
		"processing_video":  "🎥 *Обработка видео...* 🎥\n\n🎬 *Извлечение аудио*\n⏱️ *Это может занять несколько минут*",
		"no_api_key":        "⚠️ *Функция аудио/видео недоступна* ⚠️\n\n🔑 *Отсутствует API ключ*\n\n📞 *Свяжитесь с администратором*",
		"premium_required":  "🔒 *Премиум функция*\n\nНастройки стиля доступны премиум пользователям. Используйте /upgrade!",
		"file_too_large":    "⚠️ *Файл слишком большой* ⚠️\n\n📏 Размер файла %.1f МБ превышает лимит в %d МБ.\n\n💡 Попробуйте сжать файл или разделить его на части.",
		"too_short":         "⚠️ *Слишком мало текста*\n\nИзвлеченного текста недостаточно для содержательного конспекта. Отправьте больше контента.",
		"no_text":           "❌ *Текст не извлечен*\n\nНе удалось извлечь текст. Попробуйте другой контент.",
		"busy":              "⏳ *Сервер перегружен*\n\nСейчас много запросов. Попробуйте снова через минуту.",
		"web_error":         "⚠️ *Проблема с доступом к URL*\n\nПроверьте:\n• Правильность ссылки\n• Доступность сайта\n• Нет ли на сайте входа по паролю",
		"extracted_preview": "✅ *Контент успешно извлечен*\n\n*Предпросмотр:*\n```\n%s\n```\n\nСоздать конспект этого контента?",
		"summarize_button":  "✅ Конспект",
		"transcript_audio":  "📝 *Расшифровка аудио*",
		"transcript_video":  "📝 *Расшифровка видео*",
		"upgrade":           "💎 *SimpleLearn Премиум* 💎\n\n✨ *Что вы получите:*\n• Лимиты файлов в 2 раза больше\n• Настройка стиля конспекта\n• Приоритетная обработка\n\n*30 дней за 30 000 сум*",
		"upgrade_button":    "💎 Премиум (30 000 сум)",
		"premium_active":    "💎 *У вас Премиум!*\n\nПодписка активна до %s.",
		"premium_thanks":    "🎉 *Оплата получена!*\n\nПремиум активен 30 дней. Наслаждайтесь!",
		"payments_offline":  "⚠️ *Оплата недоступна*\n\nСвяжитесь с администратором.",
	},
	"uz": {
		"welcome":           "🌟 *SimpleLearn'ga xush kelibsiz! Sizning AI o'rganish yordamchingiz* 🌟\n\n📚 *Men nima qila olaman:*\n• 📄 Uzun ma'ruzalarni qisqa xulosalarga aylantirish\n• 🎥 Videolardan asosiy fikrlarni ajratish\n• 🎤 Audio yozuvlarni transkripsiya qilish\n• 🔗 Veb-maqolalarni xulosa qilish\n• 💬 Uzun matnlarni qisqartirish\n\n🚀 *Kontentingizni ulashing, men mukammal xulosa yarataman!*",
		"choose_language":   "🌍 *Keling, boshlaymiz!* 🌍\n\n*Iltimos, o'zingizga qulay tilni tanlang:*",
		"language_selected": "✨ *Ajoyib! O'zbek tili o'rnatildi!* ✨",
		"help":              "📚 *SimpleLearn yordam markazi* 📚\n\n🎯 *Men yordam bera olaman:*\n📄 PDF, 📝 DOCX, 📃 TXT\n🎥 Video, 🎤 Audio, 🔗 Veb-maqolalar, 💬 Matn\n\n⚡️ *Buyruqlar:*\n• /start - Yangi sessiya\n• /settings - Sozlamalar\n• /upgrade - Premium\n• /help - Ushbu qo'llanma",
		"send_document":     "📤 *Ishga tayyorman!* 📤\n\n✨ *Kontentingizni ulashing:*\n• 📄 Hujjat • 🎥 Video • 🎤 Audio • 🔗 Havola • 💬 Matn",
		"processing":        "⏳ *Kontentingiz qayta ishlanmoqda...* ⏳",
		"summarizing":       "🧠 *Mukammal xulosa yaratilmoqda...* 🧠\n\n*Deyarli tayyor!*",
		"error":             "❌ *Voy! Nimadir noto'g'ri ketdi* ❌\n\n💡 *Qayta urinib ko'ring:*\n• Boshqa hujjat yuboring\n• Fayl formatini tekshiring",
		"language":          "🌐 Til sozlamalari",
		"settings":          "⚙️ Sozlamalar",
		"current_language":  "Joriy til:",
		"current_style":     "Joriy uslub:",
		"summary_style":     "📝 Xulosa uslubi",
		"choose_style":      "✨ *Xulosa uslubini tanlang:*",
		"style_short":       "📌 Qisqa (2-3 band)",
		"style_medium":      "📋 O'rta (4-6 band)",
		"style_long":        "📄 Batafsil (7-10 band)",
		"style_selected":    "✅ *Xulosa uslubi yangilandi!*\n\nXulosalaringiz endi *%s* formatida bo'ladi.",
		"unsupported":       "⚠️ *Format qo'llab-quvvatlanmaydi* ⚠️\n\n📝 *Men ishlay olaman:*\n• PDF, DOCX va TXT\n• Video va audio\n• Veb-havolalar\n• Matn",
		"transcribing":      "🎤 *Audio transkripsiya qilinmoqda...* 🎤",
		"processing_video":  "🎥 *Video qayta ishlanmoqda...* 🎥\n\n⏱️ *Bir necha daqiqa vaqt olishi mumkin*",
		"no_api_key":        "⚠️ *Audio/video funksiyasi mavjud emas* ⚠️\n\n🔑 *API kaliti yo'q*\n\n📞 *Administrator bilan bog'laning*",
		"premium_required":  "🔒 *Premium funksiya*\n\nUslub sozlamalari premium foydalanuvchilar uchun. /upgrade dan foydalaning!",
		"file_too_large":    "⚠️ *Fayl juda katta* ⚠️\n\n📏 Fayl hajmi %.1f MB, ruxsat etilgan chegara %d MB.\n\n💡 Faylni siqib yoki bo'lib yuboring.",
		"too_short":         "⚠️ *Matn juda qisqa*\n\nMazmunli xulosa uchun matn yetarli emas. Ko'proq kontent yuboring.",
		"no_text":           "❌ *Matn ajratilmadi*\n\nMatn ajratib bo'lmadi. Boshqa kontent yuboring.",
		"busy":              "⏳ *Server band*\n\nHozir so'rovlar ko'p. Birozdan keyin qayta urinib ko'ring.",
		"web_error":         "⚠️ *URL bilan muammo*\n\nTekshiring:\n• Havola to'g'riligini\n• Sayt ochiqligini\n• Saytga kirish parol talab qilmasligini",
		"extracted_preview": "✅ *Kontent muvaffaqiyatli ajratildi*\n\n*Ko'rib chiqish:*\n```\n%s\n```\n\nUshbu kontentning xulosasini yaratasizmi?",
		"summarize_button":  "✅ Xulosa",
		"transcript_audio":  "📝 *Audio transkripsiyasi*",
		"transcript_video":  "📝 *Video transkripsiyasi*",
		"upgrade":           "💎 *SimpleLearn Premium* 💎\n\n✨ *Siz olasiz:*\n• 2 barobar katta fayl chegaralari\n• Xulosa uslubini sozlash\n• Ustuvor qayta ishlash\n\n*30 kun uchun 30 000 so'm*",
		"upgrade_button":    "💎 Premium (30 000 so'm)",
		"premium_active":    "💎 *Sizda Premium!*\n\nObuna %s gacha faol.",
		"premium_thanks":    "🎉 *To'lov qabul qilindi!*\n\nPremium 30 kunga faollashtirildi!",
		"payments_offline":  "⚠️ *To'lov mavjud emas*\n\nAdministrator bilan bog'laning.",
	},
}
