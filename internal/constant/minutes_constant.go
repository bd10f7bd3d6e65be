package constant

// MeetingMinutesPromptTemplate turns an audio transcription into structured
// minutes. Takes the transcription text as its single argument.
const MeetingMinutesPromptTemplate = `以下は、自分ごと化会議の音声を文字起こししたものです。これをもとに会議の概要をなるべく情報量が大きくなるようにまとめてください。前後の文脈を踏まえた上で、構造化してください。
論点の整理は、賛成意見や反対意見などを整理し、インサイトは別に書いてください。会議の全部のログを清書したもの・反対意見の構造化などのまとめは別にまとめてください。

%s`

const MeetingMinutesSchema = `{
  "type": "OBJECT",
  "properties": {
    "summary": { "type": "STRING", "description": "会議の概要・要旨" },
    "keyPoints": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "point": { "type": "STRING", "description": "主要論点" },
          "supportingOpinions": { "type": "ARRAY", "items": { "type": "STRING" }, "description": "賛成意見" },
          "opposingOpinions": { "type": "ARRAY", "items": { "type": "STRING" }, "description": "反対意見" }
        },
        "required": ["point", "supportingOpinions", "opposingOpinions"]
      },
      "description": "論点と意見の整理"
    },
    "insights": { "type": "ARRAY", "items": { "type": "STRING" }, "description": "会議から得られたインサイト・気づき" },
    "cleanedTranscript": { "type": "STRING", "description": "会議ログの清書版（発言者の意図が明確になるよう整理）" }
  },
  "required": ["summary", "keyPoints", "insights", "cleanedTranscript"]
}`
