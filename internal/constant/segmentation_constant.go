package constant

// Perspective and type labels returned by the segmentation model.
const (
	PerspectiveResident  = "住民"
	PerspectiveGovern    = "行政"
	PerspectiveCommunity = "地域団体"
	PerspectiveExpert    = "専門家"
	PerspectiveUnknown   = "不明"

	SegmentTypeChallenge = "課題"
	SegmentTypeSolution  = "解決策"
)

// SegmentationPromptTemplate extracts card-sized segments from meeting
// minutes or proposal text. Takes the raw input text as its single argument.
const SegmentationPromptTemplate = `あなたは会議の議事録や提案シートを分析するアシスタントです。以下のテキストから「重要な意見」「参加者の発言」「提案内容」「課題点」に該当する部分のみを抽出してください。会議の進行に関する情報（司会者の発言、議題の説明、時間管理、日付、場所など）や、意見ではない発言（例：「ありがとうございました」「質問はありますか」）は完全に無視してください。

抽出した各内容を、KJ法のカードとして使用できるよう、簡潔で意味の通じる独立したフレーズまたは短い文に分割してください。一つのカードには、一つのアイデアだけが含まれるように、できるだけ短く、具体的に分割してください。

さらに、各発言・意見・提案について、それが誰の立場からの発言かを以下の分類で判定してください：
- "住民": 住民、市民、参加者、地域住民などからの意見や要望
- "行政": 市役所、行政職員、自治体からの説明や提案
- "地域団体": 自治会、商店会、NPO、地域組織からの意見
- "専門家": 有識者、コンサルタント、専門家からの助言
- "不明": 発言者の立場が特定できない場合

また、各内容が「課題・問題点」なのか「解決策・提案」なのかも判定してください。

結果を以下の形式のJSONで返してください：
{
  "segments": [
    {
      "text": "抽出した内容",
      "perspective": "住民|行政|地域団体|専門家|不明",
      "type": "課題|解決策",
      "reasoning": "判定理由の簡潔な説明"
    }
  ]
}

内容がない場合は {"segments": []} を返してください。

テキスト:
` + "```" + `
%s
` + "```" + `

JSON:`

// SegmentationSchema constrains the segmentation response.
const SegmentationSchema = `{
  "type": "OBJECT",
  "properties": {
    "segments": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "text": { "type": "STRING" },
          "perspective": { "type": "STRING", "enum": ["住民", "行政", "地域団体", "専門家", "不明"] },
          "type": { "type": "STRING", "enum": ["課題", "解決策"] },
          "reasoning": { "type": "STRING" }
        },
        "required": ["text", "perspective", "type"]
      }
    }
  },
  "required": ["segments"]
}`
