package constant

// GroupingPromptTemplate clusters semantically related cards. Takes the
// serialized card list (id + text) as its single argument.
const GroupingPromptTemplate = `以下のカードリストがあります。意味的に関連性の高いカード同士をグループ化し、各グループに簡潔で仮のテーマ名を付けてください。関連性が低いカードはグループ化しないでください。結果を {"groups": [{"groupName": "仮のテーマ名", "cardIds": ["id1", "id2"]}, ...], "ungroupedIds": ["id3", ...]} の形式で返してください。

カードリスト: %s`

const GroupingSchema = `{
  "type": "OBJECT",
  "properties": {
    "groups": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "groupName": { "type": "STRING" },
          "cardIds": { "type": "ARRAY", "items": { "type": "STRING" } }
        },
        "required": ["groupName", "cardIds"]
      }
    },
    "ungroupedIds": { "type": "ARRAY", "items": { "type": "STRING" } }
  },
  "required": ["groups"]
}`

// GroupAnalysisPromptTemplate names a cluster's central challenge and tags
// each member card. Arguments: provisional theme name, serialized card list.
const GroupAnalysisPromptTemplate = `以下のカード群は「%s」というテーマでまとめられました。このグループの中心的な「課題」を要約した新しいグループ名を付けてください。そして、各カードが「課題」そのものか、それに対する「解決策」かを判断してください。「解決策」の場合は、その視点を「自分ができること」「地域ができること」「行政ができること」から分類してください。結果を {"groupName": "新しい課題名", "memberCardDetails": [{"cardId": "...", "isChallenge": true/false, "solutionPerspective": "..."}]} の形式で返してください。

カードリスト: %s`

const GroupAnalysisSchema = `{
  "type": "OBJECT",
  "properties": {
    "groupName": { "type": "STRING" },
    "memberCardDetails": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "cardId": { "type": "STRING" },
          "isChallenge": { "type": "BOOLEAN" },
          "solutionPerspective": { "type": "STRING", "enum": ["自分ができること", "地域ができること", "行政ができること"] }
        },
        "required": ["cardId", "isChallenge"]
      }
    }
  },
  "required": ["groupName", "memberCardDetails"]
}`
